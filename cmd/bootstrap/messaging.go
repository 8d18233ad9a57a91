package bootstrap

import (
	"context"
	"log/slog"

	"storefront/internal/infra/messaging"
	"storefront/internal/pkg/config"
	"storefront/internal/usecase/shared"
	"storefront/internal/worker"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Invoke(
		StartOutboxRelay,
	),
)

// StartOutboxRelay publishes outbox events to RabbitMQ. Without AMQP_URL the
// events stay pending in the outbox table.
func StartOutboxRelay(lc fx.Lifecycle, cfg config.Config, uow shared.UnitOfWork, logger *slog.Logger) {
	if cfg.AMQP.URL == "" {
		logger.Info("AMQP_URL not set, outbox relay disabled")
		return
	}

	var (
		mq    *messaging.RabbitMQ
		relay *worker.OutboxRelay
	)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			var err error
			mq, err = messaging.NewRabbitMQ(cfg.AMQP.URL, cfg.AMQP.OrderExchange, logger)
			if err != nil {
				return err
			}
			relay = worker.NewOutboxRelay(uow, mq, logger, worker.OutboxRelayConfig{
				Interval:    cfg.Outbox.PollInterval,
				BatchSize:   cfg.Outbox.BatchSize,
				MaxAttempts: cfg.Outbox.MaxAttempts,
			})
			relay.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			if relay != nil {
				relay.Stop()
			}
			if mq != nil {
				return mq.Close()
			}
			return nil
		},
	})
}
