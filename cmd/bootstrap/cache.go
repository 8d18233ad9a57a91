package bootstrap

import (
	"context"
	"log/slog"

	"storefront/internal/infra/cache"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/usecase/queries"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewCatalogCache,
	),
)

// NewCatalogCache shares snapshots through Redis when REDIS_ADDR is set and
// keeps them in process memory otherwise.
func NewCatalogCache(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (queries.CatalogCache, error) {
	if cfg.Cache.RedisAddr == "" {
		logger.Info("catalog cache in memory", "ttl", cfg.Cache.CatalogTTL.String())
		return cache.NewMemoryCatalogCache(cfg.Cache.CatalogTTL, clk), nil
	}

	client, err := cache.NewRedisClient(context.Background(), cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	logger.Info("catalog cache in redis", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.CatalogTTL.String())
	return cache.NewRedisCatalogCache(client, cfg.Cache.CatalogTTL, clk, logger), nil
}
