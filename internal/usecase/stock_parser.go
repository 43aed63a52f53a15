package usecase

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/ammotrack/backend/internal/domain"
)

// Explicit-unavailable phrases. Any hit is an override: negative language
// always wins, no matter what else the page says.
var outOfStockPhrases = []string{
	"out of stock",
	"sold out",
	"currently unavailable",
	"temporarily unavailable",
	"back order",
	"backorder",
	"notify when available",
	"email when available",
	"currently out of stock",
	"not available",
	"discontinued",
	"item unavailable",
}

// Strong-affirmative phrases: action controls and availability claims.
var inStockPhrases = []string{
	"add to cart",
	"buy now",
	"purchase now",
	"order now",
	"in stock",
	"available now",
	"ships today",
	"ready to ship",
}

// defaultDisabledPatterns detect greyed-out or disabled purchase controls.
// Class-substring sniffing is brittle and retailer-specific, which is why
// the predicate is pluggable per source.
var defaultDisabledPatterns = []*regexp.Regexp{
	regexp.MustCompile(`disabled["\s>]`),
	regexp.MustCompile(`btn-disabled`),
	regexp.MustCompile(`button-disabled`),
	regexp.MustCompile(`class="[^"]*disabled[^"]*"`),
}

// stockSignals are the independent observations fed to the decision table.
type stockSignals struct {
	affirmative  []string
	disabled     bool
	priceVisible bool
}

// stockRule pairs a predicate over the collected signals with its outcome.
// Rules are evaluated in declared order, first match wins, which keeps the
// priority policy testable on its own.
type stockRule struct {
	name       string
	applies    func(s stockSignals) bool
	status     domain.StockStatus
	confidence domain.StockConfidence
}

var stockDecisionTable = []stockRule{
	{
		name:       "affirmative controls enabled",
		applies:    func(s stockSignals) bool { return len(s.affirmative) > 0 && !s.disabled },
		status:     domain.InStock,
		confidence: domain.StockHigh,
	},
	{
		name:       "affirmative controls but disabled",
		applies:    func(s stockSignals) bool { return len(s.affirmative) > 0 && s.disabled },
		status:     domain.OutOfStock,
		confidence: domain.StockMedium,
	},
	{
		name:       "price visible only",
		applies:    func(s stockSignals) bool { return s.priceVisible },
		status:     domain.InStock,
		confidence: domain.StockMedium,
	},
	{
		name:       "no stock indicators",
		applies:    func(s stockSignals) bool { return true },
		status:     domain.OutOfStock,
		confidence: domain.StockLow,
	},
}

// DisabledMarkerFunc reports whether the document shows a disabled purchase
// control. Sources with unusual markup can supply their own detection.
type DisabledMarkerFunc func(loweredText string) bool

// DefaultDisabledMarker checks the common disabled CSS-state tokens.
func DefaultDisabledMarker(loweredText string) bool {
	for _, pattern := range defaultDisabledPatterns {
		if pattern.MatchString(loweredText) {
			return true
		}
	}
	return false
}

// StockParser resolves availability from document text using prioritized
// signals: explicit negative language, then affirmative action controls,
// then bare price visibility.
type StockParser struct {
	disabledMarker     DisabledMarkerFunc
	enableDebugLogging bool
}

// NewStockParser creates a stock parser. A nil disabledMarker falls back to
// DefaultDisabledMarker.
func NewStockParser(disabledMarker DisabledMarkerFunc, enableDebugLogging bool) *StockParser {
	if disabledMarker == nil {
		disabledMarker = DefaultDisabledMarker
	}
	return &StockParser{
		disabledMarker:     disabledMarker,
		enableDebugLogging: enableDebugLogging,
	}
}

// Detect returns the stock status, signal confidence, and a short reason
// string for diagnostics. The explicit-unavailable check short-circuits
// every later signal: "Add to Cart - currently Out of Stock" is out of
// stock, full stop.
func (p *StockParser) Detect(text string) (domain.StockStatus, domain.StockConfidence, string) {
	if text == "" {
		return domain.OutOfStock, domain.StockLow, "no content"
	}

	lowered := strings.ToLower(text)

	for _, phrase := range outOfStockPhrases {
		if strings.Contains(lowered, phrase) {
			if p.enableDebugLogging {
				log.Printf("[STOCK] override: found %q", phrase)
			}
			return domain.OutOfStock, domain.StockHigh, fmt.Sprintf("found %q", phrase)
		}
	}

	signals := stockSignals{
		disabled:     p.disabledMarker(lowered),
		priceVisible: HasVisiblePrice(text),
	}
	for _, phrase := range inStockPhrases {
		if strings.Contains(lowered, phrase) {
			signals.affirmative = append(signals.affirmative, phrase)
		}
	}

	for _, rule := range stockDecisionTable {
		if rule.applies(signals) {
			if p.enableDebugLogging {
				log.Printf("[STOCK] rule %q -> %s (%s)", rule.name, rule.status, rule.confidence)
			}
			return rule.status, rule.confidence, rule.name
		}
	}

	// Unreachable: the last table rule always applies.
	return domain.OutOfStock, domain.StockLow, "no rule matched"
}
