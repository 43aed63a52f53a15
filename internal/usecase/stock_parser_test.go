package usecase

import (
	"strings"
	"testing"

	"github.com/ammotrack/backend/internal/domain"
)

func TestStockParser_Detect(t *testing.T) {
	parser := NewStockParser(nil, false)

	testCases := []struct {
		name           string
		text           string
		wantStatus     domain.StockStatus
		wantConfidence domain.StockConfidence
	}{
		{
			name:           "explicit out of stock",
			text:           "This item is currently Out of Stock",
			wantStatus:     domain.OutOfStock,
			wantConfidence: domain.StockHigh,
		},
		{
			name:           "sold out",
			text:           "SOLD OUT - check back later",
			wantStatus:     domain.OutOfStock,
			wantConfidence: domain.StockHigh,
		},
		{
			name:           "backorder",
			text:           "Available on backorder only",
			wantStatus:     domain.OutOfStock,
			wantConfidence: domain.StockHigh,
		},
		{
			name:           "add to cart enabled",
			text:           `<button class="btn btn-primary">Add to Cart</button> $229.99`,
			wantStatus:     domain.InStock,
			wantConfidence: domain.StockHigh,
		},
		{
			name:           "affirmative but disabled control",
			text:           `<button class="btn add-to-cart disabled">Add to Cart</button>`,
			wantStatus:     domain.OutOfStock,
			wantConfidence: domain.StockMedium,
		},
		{
			name:           "price visible without affirmative phrase",
			text:           "Winchester White Box $24.99 per box",
			wantStatus:     domain.InStock,
			wantConfidence: domain.StockMedium,
		},
		{
			name:           "no indicators at all",
			text:           "Product details and specifications",
			wantStatus:     domain.OutOfStock,
			wantConfidence: domain.StockLow,
		},
		{
			name:           "empty content",
			text:           "",
			wantStatus:     domain.OutOfStock,
			wantConfidence: domain.StockLow,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, confidence, reason := parser.Detect(tc.text)
			if status != tc.wantStatus {
				t.Errorf("Detect() status = %s, want %s (reason: %s)", status, tc.wantStatus, reason)
			}
			if confidence != tc.wantConfidence {
				t.Errorf("Detect() confidence = %s, want %s", confidence, tc.wantConfidence)
			}
		})
	}
}

func TestStockParser_NegativeLanguageOverrides(t *testing.T) {
	parser := NewStockParser(nil, false)

	// The explicit-unavailable check short-circuits everything, including a
	// live add-to-cart control and a visible price.
	text := `Add to Cart - currently Out of Stock - was $199.99`
	status, confidence, _ := parser.Detect(text)
	if status != domain.OutOfStock {
		t.Fatalf("Detect() status = %s, want OUT_OF_STOCK", status)
	}
	if confidence != domain.StockHigh {
		t.Errorf("Detect() confidence = %s, want high", confidence)
	}
}

func TestStockParser_CustomDisabledMarker(t *testing.T) {
	// A retailer that greys out buttons with a bespoke attribute instead of
	// the usual disabled classes.
	custom := func(loweredText string) bool {
		return strings.Contains(loweredText, `data-purchasable="false"`)
	}
	parser := NewStockParser(custom, false)

	text := `<button data-purchasable="false">Buy Now</button>`
	status, confidence, _ := parser.Detect(text)
	if status != domain.OutOfStock {
		t.Errorf("Detect() status = %s, want OUT_OF_STOCK with custom marker", status)
	}
	if confidence != domain.StockMedium {
		t.Errorf("Detect() confidence = %s, want medium", confidence)
	}
}

func TestDefaultDisabledMarker(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want bool
	}{
		{"disabled attribute", `<button disabled>Add to Cart</button>`, true},
		{"btn-disabled class", `<a class="btn btn-disabled">Buy</a>`, true},
		{"class containing disabled", `<div class="cart-button disabled-state">`, true},
		{"clean markup", `<button class="btn btn-primary">Add to Cart</button>`, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DefaultDisabledMarker(strings.ToLower(tc.text)); got != tc.want {
				t.Errorf("DefaultDisabledMarker() = %v, want %v", got, tc.want)
			}
		})
	}
}
