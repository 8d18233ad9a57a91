package bootstrap

import (
	"context"
	"log/slog"

	"storefront/internal/infra/telemetry"
	"storefront/internal/pkg/config"

	"go.uber.org/fx"
)

var TelemetryModule = fx.Module("telemetry",
	fx.Provide(
		NewTelemetry,
	),
)

func NewTelemetry(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*telemetry.Instruments, error) {
	inst, shutdown, err := telemetry.Init(context.Background(), cfg.Telemetry, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: shutdown,
	})
	return inst, nil
}
