package cache

import (
	"context"
	"sync"
	"time"

	"storefront/internal/pkg/clock"
	"storefront/internal/usecase/queries"
)

// MemoryCatalogCache is a process-local catalog cache with one slot per
// featured filter. Entries are never evicted on writes; they age out.
type MemoryCatalogCache struct {
	mu      sync.RWMutex
	entries map[bool]queries.CatalogSnapshot
	ttl     time.Duration
	clock   clock.Clock
}

func NewMemoryCatalogCache(ttl time.Duration, clk clock.Clock) *MemoryCatalogCache {
	return &MemoryCatalogCache{
		entries: make(map[bool]queries.CatalogSnapshot, 2),
		ttl:     ttl,
		clock:   clk,
	}
}

func (c *MemoryCatalogCache) Get(_ context.Context, featured bool) (*queries.CatalogSnapshot, bool) {
	c.mu.RLock()
	entry, ok := c.entries[featured]
	c.mu.RUnlock()
	if !ok || !fresh(entry.TakenAt, c.clock.Now(), c.ttl) {
		return nil, false
	}

	products := make([]queries.ProductView, len(entry.Products))
	copy(products, entry.Products)
	return &queries.CatalogSnapshot{Products: products, TakenAt: entry.TakenAt}, true
}

func (c *MemoryCatalogCache) Put(_ context.Context, featured bool, products []queries.ProductView) {
	stored := make([]queries.ProductView, len(products))
	copy(stored, products)

	c.mu.Lock()
	c.entries[featured] = queries.CatalogSnapshot{Products: stored, TakenAt: c.clock.Now()}
	c.mu.Unlock()
}

func fresh(takenAt, now time.Time, ttl time.Duration) bool {
	return now.Sub(takenAt) < ttl
}
