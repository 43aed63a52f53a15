package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/ammotrack/backend/internal/domain"
)

// DealStore persists email deals. Deals are discrete historical events:
// append-only, keyed by source message ID, never updated in place. This
// intentionally differs from the catalog's update-in-place semantics.
type DealStore struct {
	db *gorm.DB
}

// NewDealStore creates a deal store over an initialized database.
func NewDealStore(db *gorm.DB) *DealStore {
	return &DealStore{db: db}
}

// Save inserts a deal unless one with the same message ID already exists.
// A duplicate is a logged no-op reported as success - the message was
// processed before and its record is immutable.
func (s *DealStore) Save(ctx context.Context, deal *domain.DealRecord) bool {
	if deal == nil || deal.MessageID == "" {
		log.Println("[DEALS] save skipped: missing message ID")
		return false
	}

	row, err := toEmailDeal(deal)
	if err != nil {
		log.Printf("[DEALS] failed to encode deal %q: %v", deal.MessageID, err)
		return false
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.EmailDeal
		err := tx.Where("message_id = ?", deal.MessageID).First(&existing).Error
		if err == nil {
			return domain.ErrDuplicateDeal
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(row).Error
	})

	if errors.Is(err, domain.ErrDuplicateDeal) {
		log.Printf("[DEALS] message %q already processed, skipping", deal.MessageID)
		return true
	}
	if err != nil {
		log.Printf("[DEALS] failed to save deal %q: %v", deal.MessageID, err)
		return false
	}
	return true
}

// RecentDeals returns the latest stored deals, newest first.
func (s *DealStore) RecentDeals(ctx context.Context, limit int) ([]domain.EmailDeal, error) {
	if limit <= 0 {
		limit = 20
	}

	var deals []domain.EmailDeal
	err := s.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&deals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query deals: %w", err)
	}
	return deals, nil
}

// toEmailDeal flattens a DealRecord into its persisted row, JSON-encoding
// the list-valued fields.
func toEmailDeal(deal *domain.DealRecord) (*domain.EmailDeal, error) {
	calibers, err := json.Marshal(deal.Calibers)
	if err != nil {
		return nil, err
	}
	prices, err := json.Marshal(deal.Prices)
	if err != nil {
		return nil, err
	}
	urls, err := json.Marshal(deal.DealURLs)
	if err != nil {
		return nil, err
	}

	return &domain.EmailDeal{
		MessageID:       deal.MessageID,
		Sender:          deal.Sender,
		Subject:         deal.Subject,
		ReceivedDate:    deal.ReceivedDate,
		RetailerName:    deal.RetailerName,
		DealTitle:       deal.DealTitle,
		DealDescription: deal.DealDescription,
		Calibers:        string(calibers),
		Prices:          string(prices),
		DiscountPercent: deal.DiscountPercent,
		PromoCode:       deal.PromoCode,
		DealURLs:        string(urls),
		EmailHTML:       deal.HTMLContent,
		EmailText:       deal.TextContent,
		ConfidenceScore: deal.Confidence,
		CreatedAt:       time.Now().UTC(),
	}, nil
}
