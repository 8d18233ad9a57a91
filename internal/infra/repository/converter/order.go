package converter

import (
	"math"
	"time"

	"storefront/internal/domain/order"
	"storefront/internal/domain/product"
	sqlc "storefront/internal/infra/sqlc/generated"
	"storefront/internal/pkg/pgconv"

	"github.com/google/uuid"
)

func OrderToCreateParams(o *order.Order) sqlc.CreateOrderParams {
	return sqlc.CreateOrderParams{
		ID:              o.ID(),
		UserID:          o.UserID(),
		Status:          o.Status().String(),
		TotalAmount:     pgconv.CentsToNumeric(o.Total().Cents()),
		ShippingAddress: o.ShippingAddress(),
		PaymentMethod:   o.PaymentMethod(),
	}
}

func LineToInsertParams(orderID uuid.UUID, position int, l order.Line) sqlc.InsertOrderItemParams {
	if position > math.MaxInt32 {
		position = math.MaxInt32
	}
	return sqlc.InsertOrderItemParams{
		OrderID:   orderID,
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		Price:     pgconv.CentsToNumeric(l.UnitPrice.Cents()),
		Position:  int32(position), // #nosec G115 -- clamped above
	}
}

func OrderFromRows(row sqlc.Orders, items []sqlc.OrderItems) (*order.Order, error) {
	total, err := pgconv.CentsFromNumeric(row.TotalAmount)
	if err != nil {
		return nil, err
	}
	lines := make([]order.Line, 0, len(items))
	for _, it := range items {
		cents, err := pgconv.CentsFromNumeric(it.Price)
		if err != nil {
			return nil, err
		}
		lines = append(lines, order.Line{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: product.MustMoney(cents),
		})
	}
	var delivery *time.Time
	if row.DeliveryTime.Valid {
		t := row.DeliveryTime.Time
		delivery = &t
	}
	return order.ReconstructOrder(
		row.ID, row.UserID, lines, order.Status(row.Status),
		row.ShippingAddress, row.PaymentMethod,
		product.MustMoney(total), delivery,
		pgconv.TimeFromPgtype(row.CreatedAt), pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
