package usecase

import (
	"log"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ammotrack/backend/internal/domain"
)

const pricePerRoundScale = 4

var (
	multiSpacePattern = regexp.MustCompile(`\s+`)
	nameNoisePattern  = regexp.MustCompile(`[^\w\s.\-()/$&]`)
)

// ExtractorConfig holds the tunable bands for one extraction context. Search
// and category pages use the tighter listing bands; product pages use the
// defaults.
type ExtractorConfig struct {
	PriceRange         PriceRange
	QuantityRange      QuantityRange
	DisabledMarker     DisabledMarkerFunc
	MinDiscountPercent float64
	EnableDebugLogging bool
}

// Extractor is the record normalizer: it runs every field parser over a raw
// document, applies the hard rejection rules, and assembles a validated
// ExtractedRecord with its confidence score. Extraction is a pure,
// non-suspending computation - safe to call concurrently.
type Extractor struct {
	priceRange         PriceRange
	quantityRange      QuantityRange
	stock              *StockParser
	scorer             *ConfidenceScorer
	enableDebugLogging bool
}

// NewExtractor creates an extractor. Zero-valued ranges fall back to the
// package defaults.
func NewExtractor(cfg ExtractorConfig) *Extractor {
	priceRange := cfg.PriceRange
	if priceRange.Max <= 0 {
		priceRange = DefaultPriceRange
	}
	quantityRange := cfg.QuantityRange
	if quantityRange.Max <= 0 {
		quantityRange = DefaultQuantityRange
	}

	return &Extractor{
		priceRange:         priceRange,
		quantityRange:      quantityRange,
		stock:              NewStockParser(cfg.DisabledMarker, cfg.EnableDebugLogging),
		scorer:             NewConfidenceScorer(cfg.MinDiscountPercent),
		enableDebugLogging: cfg.EnableDebugLogging,
	}
}

// Extract turns one raw document into a validated record or a typed
// rejection. Rejections are normal negative results: callers skip the
// document and continue the batch.
func (e *Extractor) Extract(rawText string, source domain.SourceContext) (*domain.ExtractedRecord, error) {
	price, priceFound := ExtractPrice(rawText, e.priceRange)
	if !priceFound {
		return nil, domain.Reject(domain.ErrNoPrice, "")
	}

	// The caller's range may be wider than the domain-valid band; the band
	// is enforced unconditionally.
	if price < DefaultPriceRange.Min || price > DefaultPriceRange.Max {
		return nil, domain.Reject(domain.ErrPriceOutOfRange, "")
	}

	caliber, caliberFound := ExtractCaliber(rawText)
	if !caliberFound {
		return nil, domain.Reject(domain.ErrUnknownCaliber, "")
	}

	quantity, quantityExplicit := ExtractQuantity(rawText, e.quantityRange)
	if quantity == 0 {
		// Defaults make this unreachable, but the division below must
		// never see a zero.
		return nil, domain.Reject(domain.ErrZeroQuantity, "")
	}

	status, signal, reason := e.stock.Detect(rawText)

	record := &domain.ExtractedRecord{
		Name:          extractDisplayName(rawText),
		Caliber:       caliber,
		Price:         price,
		Quantity:      quantity,
		QuantityExact: quantityExplicit,
		PricePerRound: PricePerRound(price, quantity),
		InStock:       status == domain.InStock,
		StockSignal:   signal,
		Source:        source,
	}

	if grains, ok := ExtractGrainWeight(rawText); ok {
		record.GrainWeight = grains
	}
	if bulletType, ok := ExtractBulletType(rawText); ok {
		record.BulletType = bulletType
	}

	record.Confidence = e.scorer.ScoreListing(listingFactors{
		retailerKnown:    source.RetailerID != 0 || source.RetailerName != "",
		caliberFound:     true,
		quantityExplicit: quantityExplicit,
		priceValid:       true,
		stockSignal:      signal,
	})

	if e.enableDebugLogging {
		log.Printf("[EXTRACT] %q -> %s $%.2f x%d ($%.4f/rd) %s/%s confidence=%.2f",
			record.Name, record.Caliber, record.Price, record.Quantity,
			record.PricePerRound, stockLabel(record.InStock), reason, record.Confidence)
	}

	return record, nil
}

// PricePerRound computes the normalized comparison unit: price divided by
// round count, rounded to 4 decimals. Always recomputed from its inputs at
// write time, never carried over from a previous observation.
func PricePerRound(price float64, quantity int) float64 {
	if quantity == 0 {
		return 0
	}
	return decimal.NewFromFloat(price).
		Div(decimal.NewFromInt(int64(quantity))).
		Round(pricePerRoundScale).
		InexactFloat64()
}

// extractDisplayName derives a product display name from the document: the
// first non-empty line, stripped of markup noise and collapsed whitespace.
func extractDisplayName(rawText string) string {
	for _, line := range strings.Split(rawText, "\n") {
		cleaned := nameNoisePattern.ReplaceAllString(line, " ")
		cleaned = strings.TrimSpace(multiSpacePattern.ReplaceAllString(cleaned, " "))
		if cleaned == "" {
			continue
		}
		// Truncate on rune boundaries so a multi-byte character is never
		// split into invalid UTF-8.
		if runes := []rune(cleaned); len(runes) > 255 {
			cleaned = strings.TrimSpace(string(runes[:255]))
		}
		return cleaned
	}
	return ""
}

func stockLabel(inStock bool) string {
	if inStock {
		return "IN_STOCK"
	}
	return "OUT_OF_STOCK"
}
