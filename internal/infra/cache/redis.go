package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/pkg/clock"
	"storefront/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "catalog:snapshot:"

// RedisCatalogCache shares catalog snapshots between API replicas. Failures
// are logged and reported as misses.
type RedisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	clock  clock.Clock
	logger *slog.Logger
}

func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewRedisCatalogCache(client *redis.Client, ttl time.Duration, clk clock.Clock, logger *slog.Logger) *RedisCatalogCache {
	return &RedisCatalogCache{
		client: client,
		ttl:    ttl,
		clock:  clk,
		logger: logger,
	}
}

func (c *RedisCatalogCache) Get(ctx context.Context, featured bool) (*queries.CatalogSnapshot, bool) {
	val, err := c.client.Get(ctx, snapshotKey(featured)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "catalog cache read failed", "featured", featured, "error", err)
		}
		return nil, false
	}

	var snap queries.CatalogSnapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		c.logger.WarnContext(ctx, "catalog cache entry is corrupt", "featured", featured, "error", err)
		return nil, false
	}
	if !fresh(snap.TakenAt, c.clock.Now(), c.ttl) {
		return nil, false
	}
	return &snap, true
}

func (c *RedisCatalogCache) Put(ctx context.Context, featured bool, products []queries.ProductView) {
	snap := queries.CatalogSnapshot{Products: products, TakenAt: c.clock.Now()}
	data, err := json.Marshal(snap)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to encode catalog snapshot", "error", err)
		return
	}
	if err := c.client.Set(ctx, snapshotKey(featured), data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "catalog cache write failed", "featured", featured, "error", err)
	}
}

func snapshotKey(featured bool) string {
	if featured {
		return keyPrefix + "featured"
	}
	return keyPrefix + "all"
}
