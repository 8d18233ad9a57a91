package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/inventory"
	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/infra/repository/converter"
	sqlc "storefront/internal/infra/sqlc/generated"
	"storefront/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const orderItemsOrderFK = "order_items_order_id_fkey"

type OrderWriteQueries interface {
	CreateOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderParams) (sqlc.Orders, error)
	InsertOrderItem(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOrderItemParams) error
	DeleteOrder(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	UpdateOrderStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOrderStatusParams) (int64, error)
	UpdateOrderDetails(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOrderDetailsParams) (int64, error)
}

type OrderRepository struct {
	queries OrderWriteQueries
}

func NewOrderRepository(queries OrderWriteQueries) *OrderRepository {
	return &OrderRepository{queries: queries}
}

func (r *OrderRepository) CreateHeader(ctx context.Context, db sqlc.DBTX, o *order.Order) (time.Time, error) {
	row, err := r.queries.CreateOrder(ctx, db, converter.OrderToCreateParams(o))
	if err != nil {
		return time.Time{}, infra.WrapRepoErr("failed to create order", err)
	}
	return pgconv.TimeFromPgtype(row.CreatedAt), nil
}

func (r *OrderRepository) InsertLines(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID, lines []order.Line) error {
	for i, l := range lines {
		err := r.queries.InsertOrderItem(ctx, db, converter.LineToInsertParams(orderID, i, l))
		if err != nil {
			if referencesMissingProduct(err) {
				return infra.WrapRepoErr("order line references a missing product",
					&inventory.ProductMissingError{ProductID: l.ProductID}, infra.KindNotFound)
			}
			return infra.WrapRepoErr("failed to insert order line", err)
		}
	}
	return nil
}

// DeleteHeader removes the order; its lines go with it (ON DELETE CASCADE).
func (r *OrderRepository) DeleteHeader(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) error {
	n, err := r.queries.DeleteOrder(ctx, db, orderID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete order", err)
	}
	if n == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "order not found")
	}
	return nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID, status order.Status) error {
	n, err := r.queries.UpdateOrderStatus(ctx, db, sqlc.UpdateOrderStatusParams{ID: orderID, Status: status.String()})
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if n == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "order not found")
	}
	return nil
}

func (r *OrderRepository) UpdateDetails(ctx context.Context, db sqlc.DBTX, o *order.Order) error {
	n, err := r.queries.UpdateOrderDetails(ctx, db, sqlc.UpdateOrderDetailsParams{
		ID:              o.ID(),
		ShippingAddress: o.ShippingAddress(),
		DeliveryTime:    pgconv.TimePtrToPgtype(o.DeliveryTime()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update order", err)
	}
	if n == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "order not found")
	}
	return nil
}

// referencesMissingProduct reports a foreign key violation on an order line
// other than the one on its order header.
func referencesMissingProduct(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" {
		return false
	}
	return pgErr.ConstraintName != orderItemsOrderFK
}
