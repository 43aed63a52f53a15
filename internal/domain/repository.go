package domain

import (
	"context"
	"time"
)

// SessionOutcome carries the counts reported at the end of one batch run.
// A zero StartedAt means the caller did not track one; the store falls back
// to the completion time.
type SessionOutcome struct {
	Status          string
	ProductsFound   int
	ProductsUpdated int
	ProductsNew     int
	ErrorMessage    string
	StartedAt       time.Time
}

// CatalogStore is the persistence boundary for products and their price
// history. Upsert reports success as a boolean: persistence failures are
// logged inside the store and must never abort the caller's batch.
type CatalogStore interface {
	Upsert(ctx context.Context, record *ExtractedRecord) bool
	LogSession(ctx context.Context, retailerID uint, outcome SessionOutcome)
	BestPrices(ctx context.Context, caliber string, limit int) ([]Product, error)
	RecentSessions(ctx context.Context, limit int) ([]ScrapingSession, error)
}

// DealStore is the append-only persistence boundary for email deals. Save
// returns true when the deal is durably stored or was already stored under
// the same message ID; duplicates are a no-op, never an overwrite.
type DealStore interface {
	Save(ctx context.Context, deal *DealRecord) bool
	RecentDeals(ctx context.Context, limit int) ([]EmailDeal, error)
}

// RetailerDirectory resolves retailer identities for extraction sources.
type RetailerDirectory interface {
	EnsureRetailer(ctx context.Context, name, website, baseURL string) (*Retailer, error)
	RetailerByID(ctx context.Context, id uint) (*Retailer, error)
}
