package cache

import (
	"context"
	"sync"
	"time"

	analyticsapp "github.com/storefront/backend/internal/application/analytics"
	"github.com/storefront/backend/internal/domain/analytics"
)

// Ensure InMemoryTopSellingCache implements the stats service port
var _ analyticsapp.TopSellingCache = (*InMemoryTopSellingCache)(nil)

type cachedRanking struct {
	stats     []analytics.ProductSalesStat
	expiresAt time.Time
}

// InMemoryTopSellingCache is a process-local ranking cache for single
// instance deployments and tests. Entries expire lazily on read.
type InMemoryTopSellingCache struct {
	mu      sync.RWMutex
	entries map[string]cachedRanking
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemoryTopSellingCache creates a cache with the given TTL.
// A non-positive TTL falls back to the default.
func NewInMemoryTopSellingCache(ttl time.Duration) *InMemoryTopSellingCache {
	if ttl <= 0 {
		ttl = defaultTopSellingTTL
	}
	return &InMemoryTopSellingCache{
		entries: make(map[string]cachedRanking),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached ranking for a month, if present and unexpired
func (c *InMemoryTopSellingCache) Get(ctx context.Context, year, month int) ([]analytics.ProductSalesStat, bool, error) {
	key := topSellingKey(year, month)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.stats, true, nil
}

// Set stores the ranking for a month
func (c *InMemoryTopSellingCache) Set(ctx context.Context, year, month int, stats []analytics.ProductSalesStat) error {
	c.mu.Lock()
	c.entries[topSellingKey(year, month)] = cachedRanking{
		stats:     stats,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
	return nil
}

// Invalidate drops the cached ranking for a month
func (c *InMemoryTopSellingCache) Invalidate(ctx context.Context, year, month int) error {
	c.mu.Lock()
	delete(c.entries, topSellingKey(year, month))
	c.mu.Unlock()
	return nil
}
