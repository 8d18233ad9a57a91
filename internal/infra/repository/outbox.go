package repository

import (
	"context"

	"storefront/internal/infra"
	sqlc "storefront/internal/infra/sqlc/generated"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OutboxQueries interface {
	InsertOutboxEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOutboxEventParams) error
	FetchPendingOutboxEvents(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.OutboxEvents, error)
	MarkOutboxEventSent(ctx context.Context, db sqlc.DBTX, id uuid.UUID) error
	MarkOutboxEventFailed(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxEventFailedParams) error
}

type OutboxRepository struct {
	queries OutboxQueries
}

func NewOutboxRepository(queries OutboxQueries) *OutboxRepository {
	return &OutboxRepository{queries: queries}
}

// Enqueue must run on the same transaction as the state change it describes.
func (r *OutboxRepository) Enqueue(ctx context.Context, tx sqlc.DBTX, event shared.OutboxEvent) error {
	id := event.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	err := r.queries.InsertOutboxEvent(ctx, tx, sqlc.InsertOutboxEventParams{
		ID:          id,
		AggregateID: event.AggregateID,
		EventType:   event.EventType,
		Payload:     event.Payload,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", err)
	}
	return nil
}

// FetchPending locks up to limit pending rows; concurrent relays skip them.
func (r *OutboxRepository) FetchPending(ctx context.Context, tx sqlc.DBTX, limit int32) ([]shared.OutboxEvent, error) {
	rows, err := r.queries.FetchPendingOutboxEvents(ctx, tx, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to fetch pending outbox events", err)
	}

	events := make([]shared.OutboxEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, shared.OutboxEvent{
			ID:          row.ID,
			AggregateID: row.AggregateID,
			EventType:   row.EventType,
			Payload:     row.Payload,
			Attempts:    row.Attempts,
			CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		})
	}
	return events, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) error {
	if err := r.queries.MarkOutboxEventSent(ctx, tx, id); err != nil {
		return infra.WrapRepoErr("failed to mark outbox event sent", err)
	}
	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, cause string, maxAttempts int32) error {
	err := r.queries.MarkOutboxEventFailed(ctx, tx, sqlc.MarkOutboxEventFailedParams{
		LastError:   pgtype.Text{String: cause, Valid: cause != ""},
		MaxAttempts: maxAttempts,
		ID:          id,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox event failed", err)
	}
	return nil
}
