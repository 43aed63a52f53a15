package domain

import "time"

// StockStatus is the resolved availability of a listing.
type StockStatus string

const (
	InStock    StockStatus = "IN_STOCK"
	OutOfStock StockStatus = "OUT_OF_STOCK"
)

// StockConfidence expresses how strong the availability signal was.
type StockConfidence string

const (
	StockHigh   StockConfidence = "high"
	StockMedium StockConfidence = "medium"
	StockLow    StockConfidence = "low"
)

// SourceContext describes where a raw document came from. Exactly one of
// OriginURL (retailer listing) or SenderAddress (email) is normally set.
type SourceContext struct {
	RetailerID    uint      `json:"retailer_id,omitempty"`
	RetailerName  string    `json:"retailer_name,omitempty"`
	OriginURL     string    `json:"origin_url,omitempty"`
	SenderAddress string    `json:"sender_address,omitempty"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// ExtractedRecord is a fully validated product observation produced by the
// extractor. By the time a record exists, caliber and price are guaranteed
// present and in range; incomplete candidates are rejected before this type
// is ever constructed.
type ExtractedRecord struct {
	Name          string          `json:"name"`
	Caliber       string          `json:"caliber"`
	Price         float64         `json:"price"`
	Quantity      int             `json:"quantity"`
	QuantityExact bool            `json:"quantity_exact"`
	PricePerRound float64         `json:"price_per_round"`
	GrainWeight   int             `json:"grain_weight,omitempty"`
	BulletType    string          `json:"bullet_type,omitempty"`
	InStock       bool            `json:"in_stock"`
	StockSignal   StockConfidence `json:"stock_signal"`
	Confidence    float64         `json:"confidence"`
	Source        SourceContext   `json:"source"`
}

// DealRecord is a validated deal candidate extracted from one email message.
type DealRecord struct {
	MessageID       string        `json:"message_id"`
	Sender          string        `json:"sender"`
	Subject         string        `json:"subject"`
	ReceivedDate    time.Time     `json:"received_date"`
	RetailerName    string        `json:"retailer_name,omitempty"`
	DealTitle       string        `json:"deal_title"`
	DealDescription string        `json:"deal_description,omitempty"`
	Calibers        []string      `json:"calibers"`
	Prices          []float64     `json:"prices"`
	DiscountPercent float64       `json:"discount_percent,omitempty"`
	PromoCode       string        `json:"promo_code,omitempty"`
	DealURLs        []string      `json:"deal_urls"`
	HTMLContent     string        `json:"-"`
	TextContent     string        `json:"-"`
	Confidence      float64       `json:"confidence"`
	Source          SourceContext `json:"source"`
}
