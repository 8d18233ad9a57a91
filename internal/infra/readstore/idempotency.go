package readstore

import (
	"context"

	"storefront/internal/infra"
	sqlc "storefront/internal/infra/sqlc/generated"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyReadQueries interface {
	GetIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.GetIdempotencyKeyParams) (sqlc.IdempotencyKeys, error)
}

type IdempotencyReadStore struct {
	queries IdempotencyReadQueries
	clock   clock.Clock
}

func NewIdempotencyReadStore(queries IdempotencyReadQueries, clk clock.Clock) *IdempotencyReadStore {
	return &IdempotencyReadStore{
		queries: queries,
		clock:   clk,
	}
}

// Get returns KindNotFound both for unknown and for expired keys.
func (r *IdempotencyReadStore) Get(ctx context.Context, tx sqlc.DBTX, key uuid.UUID, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	params := sqlc.GetIdempotencyKeyParams{
		Key:    key,
		UserID: userID,
	}

	row, err := r.queries.GetIdempotencyKey(ctx, tx, params)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	record := &shared.IdempotencyRecord{
		Key:           row.Key,
		UserID:        row.UserID,
		Status:        row.Status,
		RequestHash:   row.RequestHash,
		ResultOrderID: pgconv.UUIDPtrFromPgtype(row.ResultOrderID),
		ExpiresAt:     pgconv.TimeFromPgtype(row.ExpiresAt),
	}

	if r.clock.Now().After(record.ExpiresAt) {
		return nil, infra.WrapRepoErr("idempotency key expired", nil, infra.KindNotFound)
	}

	return record, nil
}
