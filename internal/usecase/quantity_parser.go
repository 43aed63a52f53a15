package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

// QuantityRange bounds accepted round counts.
type QuantityRange struct {
	Min int
	Max int
}

var (
	// DefaultQuantityRange accepts any plausible round count
	DefaultQuantityRange = QuantityRange{Min: 1, Max: 10000}

	// ListingQuantityRange is tightened for category/search pages where
	// small and huge integers are usually SKU numbers or weights
	ListingQuantityRange = QuantityRange{Min: 10, Max: 5000}
)

// Keyword-based fallbacks applied when no explicit count is present. These
// are deliberate approximations; records built on them carry QuantityExact =
// false and score lower.
const (
	caseDefaultQuantity = 1000
	boxDefaultQuantity  = 50
	fallbackQuantity    = 50
)

// Explicit round-count patterns, tried in declared order against upper-cased
// text. First in-range match wins.
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*ROUNDS?`),
	regexp.MustCompile(`(\d+)\s*CT\b`),
	regexp.MustCompile(`(\d+)\s*COUNT`),
	regexp.MustCompile(`(\d+)\s*PCS?\b`),
	regexp.MustCompile(`BOX\s*OF\s*(\d+)`),
	regexp.MustCompile(`(\d+)/BOX`),
	regexp.MustCompile(`(\d+)\s*RD\b`),
}

// ExtractQuantity resolves the round count for a listing. The boolean
// reports whether the count was explicitly parsed (true) or defaulted from
// packaging keywords (false). Quantity never fails outright: the fallback
// default guarantees a positive value.
func ExtractQuantity(text string, validRange QuantityRange) (int, bool) {
	upper := strings.ToUpper(text)

	for _, pattern := range quantityPatterns {
		for _, match := range pattern.FindAllStringSubmatch(upper, -1) {
			qty, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			if qty >= validRange.Min && qty <= validRange.Max {
				return qty, true
			}
		}
	}

	// Keyword estimates: a "case" is conventionally 1000 rounds, a "box" 50.
	if strings.Contains(upper, "CASE") {
		return caseDefaultQuantity, false
	}
	if strings.Contains(upper, "BOX") {
		return boxDefaultQuantity, false
	}

	return fallbackQuantity, false
}
