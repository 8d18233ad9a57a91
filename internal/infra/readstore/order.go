package readstore

import (
	"context"

	"storefront/internal/infra"
	sqlc "storefront/internal/infra/sqlc/generated"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/pkg/ptr"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderViewQueries interface {
	GetOrderByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Orders, error)
	ListOrderItemsByOrderIDs(ctx context.Context, db sqlc.DBTX, orderIds []uuid.UUID) ([]sqlc.OrderItems, error)
	ListOrdersByUser(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersByUserParams) ([]sqlc.Orders, error)
	CountOrdersByUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) (int64, error)
	ListAllOrders(ctx context.Context, db sqlc.DBTX, arg sqlc.ListAllOrdersParams) ([]sqlc.ListAllOrdersRow, error)
	CountAllOrders(ctx context.Context, db sqlc.DBTX, status pgtype.Text) (int64, error)
}

type OrderReadStore struct {
	queries OrderViewQueries
	db      sqlc.DBTX
}

func NewOrderReadStore(queries OrderViewQueries, db sqlc.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	row, err := r.queries.GetOrderByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get order by id", err)
	}

	view, err := orderHeaderView(row)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, []*queries.OrderView{view}); err != nil {
		return nil, err
	}
	return view, nil
}

func (r *OrderReadStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*queries.OrderView, int64, error) {
	rows, err := r.queries.ListOrdersByUser(ctx, r.db, sqlc.ListOrdersByUserParams{UserID: userID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list orders by user", err)
	}
	total, err := r.queries.CountOrdersByUser(ctx, r.db, userID)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count orders by user", err)
	}

	views := make([]*queries.OrderView, 0, len(rows))
	for _, row := range rows {
		v, err := orderHeaderView(row)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}
	if err := r.attachItems(ctx, views); err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (r *OrderReadStore) ListAll(ctx context.Context, status *string, limit, offset int32) ([]*queries.OrderView, int64, error) {
	filter := pgconv.StringPtrToPgtype(status)
	rows, err := r.queries.ListAllOrders(ctx, r.db, sqlc.ListAllOrdersParams{Status: filter, Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list orders", err)
	}
	total, err := r.queries.CountAllOrders(ctx, r.db, filter)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count orders", err)
	}

	views := make([]*queries.OrderView, 0, len(rows))
	for _, row := range rows {
		v, err := orderHeaderView(sqlc.Orders{
			ID:              row.ID,
			UserID:          row.UserID,
			Status:          row.Status,
			TotalAmount:     row.TotalAmount,
			ShippingAddress: row.ShippingAddress,
			PaymentMethod:   row.PaymentMethod,
			DeliveryTime:    row.DeliveryTime,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		})
		if err != nil {
			return nil, 0, err
		}
		v.UserEmail = row.UserEmail
		views = append(views, v)
	}
	if err := r.attachItems(ctx, views); err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// attachItems loads lines for all views with one query.
func (r *OrderReadStore) attachItems(ctx context.Context, views []*queries.OrderView) error {
	if len(views) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(views))
	byID := make(map[uuid.UUID]*queries.OrderView, len(views))
	for i, v := range views {
		ids[i] = v.ID
		byID[v.ID] = v
		v.Items = []queries.OrderItemView{}
	}

	items, err := r.queries.ListOrderItemsByOrderIDs(ctx, r.db, ids)
	if err != nil {
		return infra.WrapRepoErr("failed to list order items", err)
	}
	for _, it := range items {
		v, ok := byID[it.OrderID]
		if !ok {
			continue
		}
		price, err := pgconv.CentsFromNumeric(it.Price)
		if err != nil {
			return infra.WrapRepoErr("invalid order item price", err)
		}
		v.Items = append(v.Items, queries.OrderItemView{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			PriceCents: price,
		})
	}
	return nil
}

func orderHeaderView(row sqlc.Orders) (*queries.OrderView, error) {
	total, err := pgconv.CentsFromNumeric(row.TotalAmount)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid order total", err)
	}
	return &queries.OrderView{
		ID:              row.ID,
		UserID:          row.UserID,
		Status:          row.Status,
		TotalCents:      total,
		ShippingAddress: row.ShippingAddress,
		PaymentMethod:   row.PaymentMethod,
		DeliveryTime:    ptr.TimeFromPgtype(row.DeliveryTime),
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}
