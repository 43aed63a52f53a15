package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ammotrack/backend/internal/domain"
	"github.com/ammotrack/backend/internal/usecase"
)

// identityLocks serializes upserts per identity key. Two concurrent
// observations of the same product must not interleave their read-modify-
// write cycles, while observations of different products proceed in
// parallel. Entries are never evicted: the key space is the set of distinct
// product identities, which grows with the catalog, not with request volume.
type identityLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newIdentityLocks() *identityLocks {
	return &identityLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *identityLocks) forKey(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}
	return lock
}

// CatalogStore persists products, price history and session audit rows.
// Every write error is caught at this boundary, logged, and reported as a
// boolean so a single bad record never aborts a batch.
type CatalogStore struct {
	db    *gorm.DB
	locks *identityLocks
}

// NewCatalogStore creates a catalog store over an initialized database.
func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db, locks: newIdentityLocks()}
}

// Upsert resolves the record's identity (retailer, normalized name, caliber)
// and either updates the existing product's mutable fields or creates a new
// one. A PriceHistory row is appended in both cases, including when the
// observed values are unchanged: history is an observation log, and a
// duplicate-value row still carries the "last checked" signal.
func (s *CatalogStore) Upsert(ctx context.Context, record *domain.ExtractedRecord) bool {
	if record == nil || record.Caliber == "" {
		log.Println("[STORE] upsert skipped: incomplete record")
		return false
	}

	normalizedName := domain.NormalizeName(record.Name)
	identityKey := fmt.Sprintf("%d|%s|%s", record.Source.RetailerID, normalizedName, record.Caliber)

	lock := s.locks.forKey(identityKey)
	lock.Lock()
	defer lock.Unlock()

	// Price-per-round is always recomputed from its inputs at write time.
	pricePerRound := usecase.PricePerRound(record.Price, record.Quantity)
	now := time.Now().UTC()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product domain.Product
		err := tx.Where("retailer_id = ? AND name = ? AND caliber = ?",
			record.Source.RetailerID, normalizedName, record.Caliber).
			First(&product).Error

		switch {
		case err == nil:
			updates := map[string]interface{}{
				"price":           record.Price,
				"quantity":        record.Quantity,
				"price_per_round": pricePerRound,
				"in_stock":        record.InStock,
				"last_updated":    now,
			}
			if record.GrainWeight > 0 {
				updates["grain_weight"] = record.GrainWeight
			}
			if record.BulletType != "" {
				updates["bullet_type"] = record.BulletType
			}
			if record.Source.OriginURL != "" {
				updates["product_url"] = record.Source.OriginURL
			}
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return err
			}

		case errors.Is(err, gorm.ErrRecordNotFound):
			product = domain.Product{
				RetailerID:    record.Source.RetailerID,
				Name:          normalizedName,
				Caliber:       record.Caliber,
				GrainWeight:   record.GrainWeight,
				BulletType:    record.BulletType,
				Price:         record.Price,
				Quantity:      record.Quantity,
				PricePerRound: pricePerRound,
				InStock:       record.InStock,
				ProductURL:    record.Source.OriginURL,
				FirstSeen:     now,
				LastUpdated:   now,
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}

		default:
			return err
		}

		history := domain.PriceHistory{
			ProductID:     product.ID,
			Price:         record.Price,
			PricePerRound: pricePerRound,
			InStock:       record.InStock,
			RecordedAt:    now,
		}
		return tx.Create(&history).Error
	})

	if err != nil {
		log.Printf("[STORE] upsert failed for %q (%s): %v", record.Name, record.Caliber, err)
		return false
	}
	return true
}

// LogSession appends one immutable audit row for a finished batch run.
func (s *CatalogStore) LogSession(ctx context.Context, retailerID uint, outcome domain.SessionOutcome) {
	session := domain.ScrapingSession{
		RunID:           uuid.NewString(),
		RetailerID:      retailerID,
		Status:          outcome.Status,
		ProductsFound:   outcome.ProductsFound,
		ProductsUpdated: outcome.ProductsUpdated,
		ProductsNew:     outcome.ProductsNew,
		ErrorMessage:    outcome.ErrorMessage,
		StartedAt:       outcome.StartedAt,
		CompletedAt:     time.Now().UTC(),
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = session.CompletedAt
	}

	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		log.Printf("[STORE] failed to log session for retailer %d: %v", retailerID, err)
	}
}

// BestPrices returns in-stock products ordered by ascending price-per-round,
// optionally filtered by caliber. Ties fall back to insertion order.
func (s *CatalogStore) BestPrices(ctx context.Context, caliber string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 50
	}

	query := s.db.WithContext(ctx).Where("in_stock = ?", true)
	if caliber != "" {
		query = query.Where("caliber = ?", caliber)
	}

	var products []domain.Product
	err := query.Order("price_per_round asc, id asc").Limit(limit).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query best prices: %w", err)
	}
	return products, nil
}

// RecentSessions returns the latest batch audit rows, newest first.
func (s *CatalogStore) RecentSessions(ctx context.Context, limit int) ([]domain.ScrapingSession, error) {
	if limit <= 0 {
		limit = 20
	}

	var sessions []domain.ScrapingSession
	err := s.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	return sessions, nil
}

// EnsureRetailer finds or creates a retailer by unique name.
func (s *CatalogStore) EnsureRetailer(ctx context.Context, name, website, baseURL string) (*domain.Retailer, error) {
	var retailer domain.Retailer
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&retailer).Error
	if err == nil {
		return &retailer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up retailer %q: %w", name, err)
	}

	retailer = domain.Retailer{Name: name, Website: website, BaseURL: baseURL, Active: true}
	if err := s.db.WithContext(ctx).Create(&retailer).Error; err != nil {
		return nil, fmt.Errorf("failed to create retailer %q: %w", name, err)
	}
	log.Printf("[STORE] added retailer %q", name)
	return &retailer, nil
}

// RetailerByID loads a retailer by primary key.
func (s *CatalogStore) RetailerByID(ctx context.Context, id uint) (*domain.Retailer, error) {
	var retailer domain.Retailer
	err := s.db.WithContext(ctx).First(&retailer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRetailerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load retailer %d: %w", id, err)
	}
	return &retailer, nil
}
