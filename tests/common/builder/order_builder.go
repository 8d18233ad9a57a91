//go:build unit || e2e

package builder

import (
	"time"

	"storefront/internal/domain/order"
	reqdto "storefront/internal/handler/dto/request"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderLine struct {
	ProductID int64
	Quantity  int32
	Price     float64
}

type OrderBuilder struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Status          order.Status
	Lines           []OrderLine
	ShippingAddress string
	PaymentMethod   string
	CreatedAt       time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		Status:          order.StatusPending,
		Lines:           []OrderLine{{ProductID: 1, Quantity: 2, Price: 100}},
		ShippingAddress: "1 Main St",
		PaymentMethod:   order.PaymentMethodCard,
		CreatedAt:       time.Now().Truncate(time.Second),
	}
}

func (o *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(o)
	return o
}

func (o *OrderBuilder) WithLines(lines ...OrderLine) *OrderBuilder {
	o.Lines = lines
	return o
}

func (o *OrderBuilder) WithStatus(s order.Status) *OrderBuilder {
	o.Status = s
	return o
}

// Build methods
func (o *OrderBuilder) BuildPlaceRequestDTO() reqdto.PlaceOrderRequest {
	items := make([]reqdto.OrderItemRequest, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, reqdto.OrderItemRequest{ID: l.ProductID, Quantity: l.Quantity, Price: l.Price})
	}
	return reqdto.PlaceOrderRequest{
		Items:           items,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
	}
}

func (o *OrderBuilder) BuildView() *queries.OrderView {
	items := make([]queries.OrderItemView, 0, len(o.Lines))
	var total int64
	for _, l := range o.Lines {
		cents := int64(l.Price*100 + 0.5)
		items = append(items, queries.OrderItemView{ProductID: l.ProductID, Quantity: l.Quantity, PriceCents: cents})
		total += cents * int64(l.Quantity)
	}
	return &queries.OrderView{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          o.Status.String(),
		TotalCents:      total,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.CreatedAt,
	}
}
