package domain

import (
	"strings"
	"time"
)

// NormalizeName canonicalizes a product display name for identity
// resolution: lower-cased with runs of whitespace collapsed. Two listings
// whose normalized names, retailer and caliber all match are the same
// product.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Retailer represents one ammunition seller we track. Retailers are created
// once and referenced by every product scraped from them; they are never
// deleted, only deactivated.
type Retailer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Website   string    `json:"website" gorm:"size:255;not null"`
	BaseURL   string    `json:"base_url" gorm:"size:255;not null"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is one distinct listing offered by one retailer. The identity key
// is (retailer_id, name, caliber) - two listings that share all three are the
// same product even when price or stock differ. PricePerRound is derived from
// Price and Quantity at write time and must never be set independently.
type Product struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	RetailerID uint     `json:"retailer_id" gorm:"not null;uniqueIndex:idx_products_identity,priority:1"`
	Retailer   Retailer `json:"retailer" gorm:"foreignKey:RetailerID"`

	Name        string `json:"name" gorm:"size:255;not null;uniqueIndex:idx_products_identity,priority:2"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	Caliber     string `json:"caliber" gorm:"size:50;not null;index;uniqueIndex:idx_products_identity,priority:3"`
	GrainWeight int    `json:"grain_weight,omitempty"`
	BulletType  string `json:"bullet_type,omitempty" gorm:"size:50"`

	Price         float64 `json:"price" gorm:"not null"`
	Quantity      int     `json:"quantity" gorm:"not null"`
	PricePerRound float64 `json:"price_per_round" gorm:"not null;index"`

	InStock bool `json:"in_stock" gorm:"default:false"`

	ProductURL string `json:"product_url,omitempty" gorm:"size:500"`

	FirstSeen   time.Time `json:"first_seen"`
	LastUpdated time.Time `json:"last_updated"`

	History []PriceHistory `json:"-" gorm:"foreignKey:ProductID"`
}

// PriceHistory is one immutable observation of a product's price and stock
// state. A row is appended on every upsert, including upserts that observed
// no change - the history is an observation log, not a change log.
type PriceHistory struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ProductID uint `json:"product_id" gorm:"not null;index"`

	Price         float64   `json:"price" gorm:"not null"`
	PricePerRound float64   `json:"price_per_round" gorm:"not null"`
	InStock       bool      `json:"in_stock" gorm:"not null"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// Scraping session status values.
const (
	SessionSuccess = "success"
	SessionPartial = "partial"
	SessionFailed  = "failed"
)

// ScrapingSession is the audit record for one extraction batch against a
// retailer. Sessions are written once when the batch finishes and never
// mutated afterwards.
type ScrapingSession struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	RunID      string `json:"run_id" gorm:"size:36;index"`
	RetailerID uint   `json:"retailer_id" gorm:"not null;index"`

	Status          string `json:"status" gorm:"size:50"`
	ProductsFound   int    `json:"products_found" gorm:"default:0"`
	ProductsUpdated int    `json:"products_updated" gorm:"default:0"`
	ProductsNew     int    `json:"products_new" gorm:"default:0"`
	ErrorMessage    string `json:"error_message,omitempty" gorm:"type:text"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// EmailDeal is one candidate deal parsed from an inbound retailer email.
// The identity key is the source MessageID; a message is immutable once
// processed, so duplicate IDs are rejected rather than overwritten.
// Calibers, Prices and DealURLs are JSON-encoded arrays.
type EmailDeal struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	MessageID string `json:"message_id" gorm:"size:255;uniqueIndex;not null"`

	Sender       string    `json:"sender" gorm:"size:255;not null"`
	Subject      string    `json:"subject" gorm:"size:500"`
	ReceivedDate time.Time `json:"received_date"`

	RetailerName    string  `json:"retailer_name,omitempty" gorm:"size:100"`
	DealTitle       string  `json:"deal_title,omitempty" gorm:"size:500"`
	DealDescription string  `json:"deal_description,omitempty" gorm:"type:text"`
	Calibers        string  `json:"calibers" gorm:"type:text"`
	Prices          string  `json:"prices" gorm:"type:text"`
	DiscountPercent float64 `json:"discount_percent,omitempty"`
	PromoCode       string  `json:"promo_code,omitempty" gorm:"size:20"`
	DealURLs        string  `json:"deal_urls" gorm:"type:text"`

	EmailHTML string `json:"-" gorm:"type:text"`
	EmailText string `json:"-" gorm:"type:text"`

	ConfidenceScore float64   `json:"confidence_score"`
	CreatedAt       time.Time `json:"created_at"`
}
