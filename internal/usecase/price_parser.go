package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

// PriceRange bounds the values the price parser will accept. E-commerce pages
// are full of incidental dollar amounts (shipping thresholds, crossed-out
// MSRP), so the range filter is the primary noise-rejection mechanism.
type PriceRange struct {
	Min float64
	Max float64
}

var (
	// DefaultPriceRange is the domain-valid band for a single listing
	DefaultPriceRange = PriceRange{Min: 0.10, Max: 10000.00}

	// ListingPriceRange is the tighter consumer-reasonable band used on
	// search and category pages to reject non-price numerals
	ListingPriceRange = PriceRange{Min: 15.00, Max: 3000.00}
)

// Compiled price patterns, evaluated in declared order. Explicit
// currency-prefixed and price-labeled forms come before bare suffix forms;
// ties are broken by scan order, first in-range match wins.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s*([0-9,]+\.?[0-9]*)`),                      // $24.99, $1,299.99
	regexp.MustCompile(`(?i)price[:\s]*\$?\s*([0-9,]+\.?[0-9]*)`),      // Price: $24.99
	regexp.MustCompile(`(?i)([0-9,]+\.?[0-9]*)\s*(?:USD|dollars?)\b`),  // 24.99 USD
}

// currencyPattern detects that some dollar amount is visible at all. The
// stock parser reuses this as a weak availability signal without applying
// range validation.
var currencyPattern = regexp.MustCompile(`\$\s*[0-9,]+\.?[0-9]*`)

// ExtractPrice scans text with the ordered price patterns and returns the
// first numeric match that falls inside validRange. The boolean is false when
// no match satisfies the range - absence, not zero.
func ExtractPrice(text string, validRange PriceRange) (float64, bool) {
	if text == "" {
		return 0, false
	}

	for _, pattern := range pricePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			raw := strings.ReplaceAll(match[1], ",", "")
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			if price >= validRange.Min && price <= validRange.Max {
				return price, true
			}
		}
	}

	return 0, false
}

// ExtractPrices collects every distinct in-range price in the text, in first
// appearance order. Used for email deals, which often quote several prices.
func ExtractPrices(text string, validRange PriceRange) []float64 {
	if text == "" {
		return nil
	}

	var prices []float64
	seen := make(map[float64]bool)

	for _, pattern := range pricePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			raw := strings.ReplaceAll(match[1], ",", "")
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			if price < validRange.Min || price > validRange.Max {
				continue
			}
			if !seen[price] {
				seen[price] = true
				prices = append(prices, price)
			}
		}
	}

	return prices
}

// HasVisiblePrice reports whether any currency-formatted amount appears in
// the text, regardless of range.
func HasVisiblePrice(text string) bool {
	return currencyPattern.MatchString(text)
}
