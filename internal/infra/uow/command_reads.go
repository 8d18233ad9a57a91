package uow

import (
	"context"

	"storefront/internal/domain/order"
	"storefront/internal/domain/product"
	"storefront/internal/infra"
	"storefront/internal/infra/readstore"
	"storefront/internal/infra/repository/converter"
	sqlc "storefront/internal/infra/sqlc/generated"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

type commandReads struct {
	uow  *PostgresUoW
	dbtx sqlc.DBTX

	// Lazy-initialized readstores
	idempotencyStore *readstore.IdempotencyReadStore
}

func newCommandReads(u *PostgresUoW, dbtx sqlc.DBTX) *commandReads {
	return &commandReads{uow: u, dbtx: dbtx}
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	if r.idempotencyStore == nil {
		r.idempotencyStore = readstore.NewIdempotencyReadStore(r.uow.q, r.uow.clock)
	}
	return r.idempotencyStore.Get(ctx, r.dbtx, key, userID)
}

// OrderForUpdate locks the order row for the rest of the transaction.
func (r *commandReads) OrderForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	row, err := r.uow.q.GetOrderForUpdate(ctx, r.dbtx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock order", err)
	}

	items, err := r.uow.q.ListOrderItemsByOrderIDs(ctx, r.dbtx, []uuid.UUID{id})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order items", err)
	}

	o, err := converter.OrderFromRows(row, items)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid order row", err)
	}
	return o, nil
}

func (r *commandReads) ProductByID(ctx context.Context, id int64) (*product.Product, error) {
	row, err := r.uow.q.GetProductByID(ctx, r.dbtx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get product", err)
	}

	p, err := converter.ProductFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid product row", err)
	}
	return p, nil
}
