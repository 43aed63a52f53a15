package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/ammotrack/backend/internal/domain"
)

// entry is one cached best-prices result with its expiration.
type entry struct {
	products   []domain.Product
	expiration time.Time
}

// ProductCache is a thread-safe in-memory TTL cache for best-price query
// results. Price data goes stale quickly, so the TTL is short; the cache
// exists to absorb dashboard polling, not to serve as a source of truth.
type ProductCache struct {
	data  map[string]entry
	mutex sync.RWMutex
	ttl   time.Duration
}

// NewProductCache creates a product cache with the given TTL.
func NewProductCache(ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	c := &ProductCache{
		data: make(map[string]entry),
		ttl:  ttl,
	}

	// Periodically drop expired entries so idle keys don't accumulate
	go c.cleanupExpired()

	return c
}

// Key builds the cache key for one best-prices query.
func Key(caliber string, limit int) string {
	return fmt.Sprintf("best:%s:%d", caliber, limit)
}

// Get returns the cached result for key, or false when absent or expired.
func (c *ProductCache) Get(key string) ([]domain.Product, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || time.Now().After(item.expiration) {
		return nil, false
	}
	return item.products, true
}

// Set stores a query result under key for the cache TTL.
func (c *ProductCache) Set(key string, products []domain.Product) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = entry{
		products:   products,
		expiration: time.Now().Add(c.ttl),
	}
}

// Clear removes all cached results.
func (c *ProductCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]entry)
}

// Size returns the current number of cached results (for debugging).
func (c *ProductCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

func (c *ProductCache) cleanupExpired() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}
