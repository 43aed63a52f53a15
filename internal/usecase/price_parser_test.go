package usecase

import "testing"

func TestExtractPrice(t *testing.T) {
	testCases := []struct {
		name       string
		text       string
		validRange PriceRange
		want       float64
		wantFound  bool
	}{
		{
			name:       "simple dollar price",
			text:       "Winchester 9mm - $24.99",
			validRange: DefaultPriceRange,
			want:       24.99,
			wantFound:  true,
		},
		{
			name:       "strips thousands separator",
			text:       "Case price $1,299.99 while supplies last",
			validRange: DefaultPriceRange,
			want:       1299.99,
			wantFound:  true,
		},
		{
			name:       "price label without dollar sign",
			text:       "Price: 189.50",
			validRange: DefaultPriceRange,
			want:       189.50,
			wantFound:  true,
		},
		{
			name:       "usd suffix",
			text:       "only 349.99 USD shipped",
			validRange: DefaultPriceRange,
			want:       349.99,
			wantFound:  true,
		},
		{
			name:       "both values outside domain band",
			text:       "accessories from $0.05, safes up to $15,000",
			validRange: DefaultPriceRange,
			want:       0,
			wantFound:  false,
		},
		{
			name:       "skips out-of-range then accepts in-range",
			text:       "Free shipping over $5. 1000rds bulk pack $219.99",
			validRange: ListingPriceRange,
			want:       219.99,
			wantFound:  true,
		},
		{
			name:       "listing band rejects shipping threshold",
			text:       "orders over $9 ship free",
			validRange: ListingPriceRange,
			want:       0,
			wantFound:  false,
		},
		{
			name:       "no numerals at all",
			text:       "currently unavailable",
			validRange: DefaultPriceRange,
			want:       0,
			wantFound:  false,
		},
		{
			name:       "empty text",
			text:       "",
			validRange: DefaultPriceRange,
			want:       0,
			wantFound:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := ExtractPrice(tc.text, tc.validRange)
			if found != tc.wantFound {
				t.Fatalf("ExtractPrice() found = %v, want %v", found, tc.wantFound)
			}
			if got != tc.want {
				t.Errorf("ExtractPrice() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExtractPrice_FirstValidMatchWins(t *testing.T) {
	// Two in-range prices: the earlier match in scan order is returned even
	// though the later one is cheaper.
	text := "Was $299.99, now available - related item $189.00"
	got, found := ExtractPrice(text, DefaultPriceRange)
	if !found {
		t.Fatal("expected a price")
	}
	if got != 299.99 {
		t.Errorf("ExtractPrice() = %v, want first valid match 299.99", got)
	}
}

func TestExtractPrices(t *testing.T) {
	t.Run("collects distinct in-range prices", func(t *testing.T) {
		text := "9mm from $12.99, .223 from $8.99, again $12.99"
		got := ExtractPrices(text, PriceRange{Min: 0.01, Max: 10000})
		if len(got) != 2 {
			t.Fatalf("ExtractPrices() returned %d prices, want 2: %v", len(got), got)
		}
		if got[0] != 12.99 || got[1] != 8.99 {
			t.Errorf("ExtractPrices() = %v, want [12.99 8.99]", got)
		}
	})

	t.Run("empty result for no matches", func(t *testing.T) {
		if got := ExtractPrices("no prices here", DefaultPriceRange); got != nil {
			t.Errorf("ExtractPrices() = %v, want nil", got)
		}
	})
}

func TestHasVisiblePrice(t *testing.T) {
	if !HasVisiblePrice("only $15,000 luxury safes") {
		t.Error("expected currency detection regardless of range")
	}
	if HasVisiblePrice("call for pricing") {
		t.Error("expected no currency detection without a dollar amount")
	}
}
