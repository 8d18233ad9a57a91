package components

import (
	"log/slog"

	"storefront/internal/infra/telemetry"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/usecase"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"
	"storefront/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewCheckoutCommands,
		commands.NewOrderUseCase,
		commands.NewProductUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		NewProductQueries,
		queries.NewOrderQueries,
		queries.NewUserQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// NewCheckoutCommands wraps the orchestrator with tracing and order metrics.
func NewCheckoutCommands(
	uow shared.UnitOfWork,
	orderQueries queries.OrderQueries,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.Config,
	inst *telemetry.Instruments,
) commands.CheckoutCommands {
	inner := commands.NewCheckoutUseCase(uow, orderQueries, clk, logger, commands.CheckoutOptions{
		Mode:           cfg.Checkout.Mode,
		IdempotencyTTL: cfg.Checkout.IdempotencyTTL,
	})
	logger.Info("checkout configured", "mode", string(cfg.Checkout.Mode))
	return telemetry.NewTracedCheckout(inner, inst, logger)
}

func NewProductQueries(readStore queries.ProductReadStore, cache queries.CatalogCache, cfg config.Config, logger *slog.Logger) queries.ProductQueries {
	return queries.NewProductQueries(readStore, cache, queries.CatalogOptions{
		StorageBaseURL: cfg.Storage.PublicURL,
		PageSize:       cfg.Cache.CatalogPageSize,
	}, logger)
}
