//go:build unit

package cache_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/infra/cache"
	"storefront/internal/pkg/clock"
	"storefront/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCatalogCache_StaleWindow(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(start)
	c := cache.NewMemoryCatalogCache(5*time.Minute, clk)

	// t=0: read 10 units and cache them.
	c.Put(ctx, false, []queries.ProductView{{ID: 1, Title: "Lamp", Quantity: 10}})

	// t=1: the stock ledger moves to 7; the cache still says 10.
	clk.Add(time.Second)
	snap, ok := c.Get(ctx, false)
	require.True(t, ok)
	assert.Equal(t, int32(10), snap.Products[0].Quantity)

	// t=2: still within the window.
	clk.Add(time.Second)
	snap, ok = c.Get(ctx, false)
	require.True(t, ok)
	assert.Equal(t, int32(10), snap.Products[0].Quantity)
	assert.Equal(t, start, snap.TakenAt)

	// t=301: expired; the caller must go to the store.
	clk.Set(start.Add(301 * time.Second))
	_, ok = c.Get(ctx, false)
	assert.False(t, ok)
}

func TestMemoryCatalogCache_ExactTTLIsMiss(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(start)
	c := cache.NewMemoryCatalogCache(5*time.Minute, clk)

	c.Put(ctx, true, []queries.ProductView{{ID: 2}})
	clk.Add(5*time.Minute - time.Nanosecond)
	_, ok := c.Get(ctx, true)
	assert.True(t, ok)

	clk.Add(time.Nanosecond)
	_, ok = c.Get(ctx, true)
	assert.False(t, ok)
}

func TestMemoryCatalogCache_SlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	c := cache.NewMemoryCatalogCache(5*time.Minute, clk)

	c.Put(ctx, true, []queries.ProductView{{ID: 1, Featured: true}})

	_, ok := c.Get(ctx, false)
	assert.False(t, ok, "featured snapshot must not answer the unfiltered slot")

	snap, ok := c.Get(ctx, true)
	require.True(t, ok)
	require.Len(t, snap.Products, 1)

	// Mutating a returned snapshot must not leak into the cache.
	snap.Products[0].Quantity = 99
	again, _ := c.Get(ctx, true)
	assert.Equal(t, int32(0), again.Products[0].Quantity)
}
