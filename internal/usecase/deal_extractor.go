package usecase

import (
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ammotrack/backend/internal/domain"
)

// dealPriceRange is wider than the listing bands: promotional emails quote
// per-round prices as well as case prices.
var dealPriceRange = PriceRange{Min: 0.01, Max: 10000.00}

// retailerDomains resolves a sender address to a known retailer. Static
// lookup table, loaded once at startup.
var retailerDomains = map[string]string{
	"sgammo.com":              "SG Ammo",
	"bulkammo.com":            "Bulk Ammo",
	"targetsportsusa.com":     "Target Sports USA",
	"brownells.com":           "Brownells",
	"palmettostatearmory.com": "Palmetto State Armory",
	"midwayusa.com":           "MidwayUSA",
	"ammoman.com":             "AmmoMan",
	"luckygunner.com":         "Lucky Gunner",
	"cheaperthandirt.com":     "Cheaper Than Dirt",
	"velocityammosales.com":   "Velocity Ammo",
}

var discountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([0-9]+)%\s*off`),
	regexp.MustCompile(`(?i)save\s*([0-9]+)%`),
	regexp.MustCompile(`(?i)([0-9]+)\s*percent\s*off`),
}

var promoCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:code|coupon|promo):\s*([A-Za-z0-9]{4,20})`),
	regexp.MustCompile(`(?i)use\s+code\s+([A-Za-z0-9]{4,20})`),
	regexp.MustCompile(`(?i)enter\s+([A-Za-z0-9]{4,20})`),
	regexp.MustCompile(`\b([A-Z]{2,}[0-9]{2,})\b`), // generic SAVE20 style
}

var promoCodeShape = regexp.MustCompile(`^[A-Z0-9]+$`)

// dealURLKeywords filter anchor hrefs down to product and deal links.
var dealURLKeywords = []string{"product", "deal", "ammo", "ammunition"}

const (
	maxDealURLs          = 10
	maxDescriptionLength = 500
	descriptionSentences = 3
	scannedSentences     = 10
)

// EmailMessage is the raw input handed to the deal extractor by the mailbox
// collaborator. Transport (IMAP sessions, MIME decoding) happens upstream;
// by this point the bodies are plain strings.
type EmailMessage struct {
	MessageID  string
	Sender     string
	Subject    string
	HTMLBody   string
	TextBody   string
	ReceivedAt time.Time
}

// DealExtractorConfig tunes the deal extraction path.
type DealExtractorConfig struct {
	MinConfidence      float64
	MinDiscountPercent float64
	EnableDebugLogging bool
}

// DealExtractor parses candidate deals out of retailer emails. Same
// normalization pipeline as listings, different identity key and factors.
type DealExtractor struct {
	minConfidence      float64
	scorer             *ConfidenceScorer
	enableDebugLogging bool
}

// NewDealExtractor creates a deal extractor. A non-positive MinConfidence
// falls back to the 0.5 persist threshold.
func NewDealExtractor(cfg DealExtractorConfig) *DealExtractor {
	minConfidence := cfg.MinConfidence
	if minConfidence <= 0 {
		minConfidence = 0.5
	}
	return &DealExtractor{
		minConfidence:      minConfidence,
		scorer:             NewConfidenceScorer(cfg.MinDiscountPercent),
		enableDebugLogging: cfg.EnableDebugLogging,
	}
}

// Extract parses one email into a DealRecord, or returns a typed rejection
// when the message does not look like a deal worth keeping.
func (d *DealExtractor) Extract(msg EmailMessage) (*domain.DealRecord, error) {
	content := msg.TextBody + " " + msg.Subject

	deal := &domain.DealRecord{
		MessageID:       msg.MessageID,
		Sender:          msg.Sender,
		Subject:         msg.Subject,
		ReceivedDate:    msg.ReceivedAt,
		RetailerName:    resolveRetailerDomain(msg.Sender),
		DealTitle:       msg.Subject,
		Calibers:        ExtractCalibers(content),
		Prices:          ExtractPrices(content, dealPriceRange),
		DealURLs:        extractDealURLs(msg.HTMLBody),
		HTMLContent:     msg.HTMLBody,
		TextContent:     msg.TextBody,
		DealDescription: extractDealDescription(msg.TextBody),
		Source: domain.SourceContext{
			SenderAddress: msg.Sender,
			FetchedAt:     msg.ReceivedAt,
		},
	}

	if discount, ok := extractDiscount(content); ok {
		deal.DiscountPercent = discount
	}
	if code, ok := extractPromoCode(content); ok {
		deal.PromoCode = code
	}

	deal.Confidence = d.scorer.ScoreDeal(deal)

	if d.enableDebugLogging {
		log.Printf("[DEAL] %q from %q: calibers=%v prices=%d urls=%d confidence=%.2f",
			msg.Subject, deal.RetailerName, deal.Calibers, len(deal.Prices),
			len(deal.DealURLs), deal.Confidence)
	}

	if deal.Confidence < d.minConfidence {
		return nil, domain.Reject(domain.ErrLowConfidence, msg.MessageID)
	}

	return deal, nil
}

// resolveRetailerDomain maps the sender address to a known retailer name,
// or "" when the domain is not recognized.
func resolveRetailerDomain(sender string) string {
	lowered := strings.ToLower(sender)
	for dealDomain, name := range retailerDomains {
		if strings.Contains(lowered, dealDomain) {
			return name
		}
	}
	return ""
}

func extractDiscount(text string) (float64, bool) {
	for _, pattern := range discountPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			if discount, err := strconv.Atoi(match[1]); err == nil {
				return float64(discount), true
			}
		}
	}
	return 0, false
}

func extractPromoCode(text string) (string, bool) {
	for _, pattern := range promoCodePatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			code := strings.ToUpper(match[1])
			if len(code) >= 4 && len(code) <= 20 && promoCodeShape.MatchString(code) {
				return code, true
			}
		}
	}
	return "", false
}

// extractDealURLs pulls product/deal links out of the HTML body, in document
// order, capped at maxDealURLs.
func extractDealURLs(htmlBody string) []string {
	if htmlBody == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return nil
	}

	var urls []string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		lowered := strings.ToLower(href)
		for _, keyword := range dealURLKeywords {
			if strings.Contains(lowered, keyword) {
				urls = append(urls, href)
				break
			}
		}
		return len(urls) < maxDealURLs
	})

	return urls
}

// extractDealDescription picks the first few deal-keyword sentences as a
// short summary, falling back to the leading text.
func extractDealDescription(text string) string {
	sentences := strings.Split(text, ".")
	if len(sentences) > scannedSentences {
		sentences = sentences[:scannedSentences]
	}

	var kept []string
	for _, sentence := range sentences {
		lowered := strings.ToLower(sentence)
		for _, keyword := range dealKeywords {
			if strings.Contains(lowered, keyword) {
				kept = append(kept, strings.TrimSpace(sentence))
				break
			}
		}
		if len(kept) >= descriptionSentences {
			break
		}
	}

	description := strings.Join(kept, ". ")
	if description != "" {
		description += "."
	} else if len(text) > 0 {
		description = text
	}

	if runes := []rune(description); len(runes) > maxDescriptionLength {
		description = string(runes[:maxDescriptionLength-3]) + "..."
	}

	return description
}
