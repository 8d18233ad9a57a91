package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/usecase/shared"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey, messageID string, body []byte) error
}

type OutboxRelayConfig struct {
	Interval    time.Duration
	BatchSize   int32
	MaxAttempts int32
}

// OutboxRelay moves committed outbox rows to the message broker. Rows are
// locked with SKIP LOCKED, so several replicas can relay concurrently.
type OutboxRelay struct {
	uow       shared.UnitOfWork
	publisher Publisher
	logger    *slog.Logger
	cfg       OutboxRelayConfig

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewOutboxRelay(uow shared.UnitOfWork, publisher Publisher, logger *slog.Logger, cfg OutboxRelayConfig) *OutboxRelay {
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	return &OutboxRelay{
		uow:       uow,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
}

// Start runs the relay loop in the background until Stop is called.
func (w *OutboxRelay) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.Run(ctx)
	}()
}

func (w *OutboxRelay) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	w.logger.Info("outbox relay started", "interval", w.cfg.Interval.String())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := w.RelayOnce(ctx); err != nil && ctx.Err() == nil {
				w.logger.Error("outbox relay batch failed", "error", err)
			}
		}
	}
}

// RelayOnce publishes one batch and returns how many events were sent.
func (w *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	sent := 0
	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = 0
		events, err := tx.Outbox().FetchPending(ctx, tx.DB(), w.cfg.BatchSize)
		if err != nil {
			return err
		}

		for _, ev := range events {
			if pubErr := w.publisher.Publish(ctx, ev.EventType, ev.ID.String(), ev.Payload); pubErr != nil {
				w.logger.Warn("failed to publish outbox event",
					"event_id", ev.ID.String(),
					"event_type", ev.EventType,
					"attempts", ev.Attempts+1,
					"error", pubErr)
				if err := tx.Outbox().MarkFailed(ctx, tx.DB(), ev.ID, pubErr.Error(), w.cfg.MaxAttempts); err != nil {
					return err
				}
				continue
			}
			if err := tx.Outbox().MarkSent(ctx, tx.DB(), ev.ID); err != nil {
				return err
			}
			sent++
		}
		return nil
	})
	return sent, err
}
