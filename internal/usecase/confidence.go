package usecase

import (
	"strings"

	"github.com/ammotrack/backend/internal/domain"
)

// Listing factor weights. Each factor is checked independently and the
// capped sum becomes the record's confidence in [0,1].
const (
	weightRetailerKnown    = 0.2
	weightCaliberFound     = 0.2
	weightExplicitQuantity = 0.15
	weightValidPrice       = 0.15
	weightStockHigh        = 0.15
	weightStockMedium      = 0.08
)

// Email deal factor weights.
const (
	weightKnownSenderDomain = 0.2
	weightSubjectKeywords   = 0.2 // cap across all keyword hits
	weightPerKeywordHit     = 0.05
	weightDealCalibers      = 0.2
	weightDealPrices        = 0.15
	weightDealDiscount      = 0.15
	weightDealURLs          = 0.1
)

// dealKeywords flag promotional language in email subjects. Static lookup
// table, loaded once and never mutated.
var dealKeywords = []string{
	"sale", "deal", "special", "discount", "save", "off",
	"clearance", "blowout", "limited time", "flash sale",
	"free shipping", "bulk discount", "weekend sale",
}

// ConfidenceScorer turns independently-checked extraction factors into a
// heuristic reliability estimate in [0,1]. The score is not a probability;
// it exists so callers can rank and threshold extractions consistently.
type ConfidenceScorer struct {
	minDiscountPercent float64
}

// NewConfidenceScorer creates a scorer. minDiscountPercent is the smallest
// discount that counts as a real deal signal.
func NewConfidenceScorer(minDiscountPercent float64) *ConfidenceScorer {
	if minDiscountPercent <= 0 {
		minDiscountPercent = 10
	}
	return &ConfidenceScorer{minDiscountPercent: minDiscountPercent}
}

// listingFactors are the observations scored for a retailer listing record.
type listingFactors struct {
	retailerKnown    bool
	caliberFound     bool
	quantityExplicit bool
	priceValid       bool
	stockSignal      domain.StockConfidence
}

// ScoreListing computes the confidence for a retailer listing extraction.
// A defaulted quantity contributes nothing, so guessed counts are always
// measurably below explicit ones.
func (s *ConfidenceScorer) ScoreListing(f listingFactors) float64 {
	score := 0.0

	if f.retailerKnown {
		score += weightRetailerKnown
	}
	if f.caliberFound {
		score += weightCaliberFound
	}
	if f.quantityExplicit {
		score += weightExplicitQuantity
	}
	if f.priceValid {
		score += weightValidPrice
	}

	switch f.stockSignal {
	case domain.StockHigh:
		score += weightStockHigh
	case domain.StockMedium:
		score += weightStockMedium
	}

	return capScore(score)
}

// ScoreDeal computes the confidence for an email deal extraction.
func (s *ConfidenceScorer) ScoreDeal(deal *domain.DealRecord) float64 {
	score := 0.0

	if deal.RetailerName != "" {
		score += weightKnownSenderDomain
	}

	if hits := countDealKeywords(deal.Subject); hits > 0 {
		contribution := float64(hits) * weightPerKeywordHit
		if contribution > weightSubjectKeywords {
			contribution = weightSubjectKeywords
		}
		score += contribution
	}

	if len(deal.Calibers) > 0 {
		score += weightDealCalibers
	}
	if len(deal.Prices) > 0 {
		score += weightDealPrices
	}
	if deal.DiscountPercent >= s.minDiscountPercent && deal.DiscountPercent > 0 {
		score += weightDealDiscount
	}
	if len(deal.DealURLs) > 0 {
		score += weightDealURLs
	}

	return capScore(score)
}

func countDealKeywords(subject string) int {
	lowered := strings.ToLower(subject)
	hits := 0
	for _, keyword := range dealKeywords {
		if strings.Contains(lowered, keyword) {
			hits++
		}
	}
	return hits
}

func capScore(score float64) float64 {
	if score > 1.0 {
		return 1.0
	}
	return score
}
