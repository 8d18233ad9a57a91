package request

import (
	"time"

	"storefront/internal/domain/product"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/patch"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderItemRequest struct {
	ID       int64   `json:"id"`
	Quantity int32   `json:"quantity"`
	Price    float64 `json:"price"`
}

// PlaceOrderRequest keeps the storefront client's camelCase field names.
type PlaceOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress string             `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
}

func (r *PlaceOrderRequest) ToInput(userID uuid.UUID, idempotencyKey *uuid.UUID) (commands.PlaceOrderInput, error) {
	lines := make([]commands.OrderLineInput, 0, len(r.Items))
	for _, it := range r.Items {
		price, err := product.MoneyFromDecimal(it.Price)
		if err != nil {
			return commands.PlaceOrderInput{}, errs.Mark(err, commands.ErrInvalidOrderLine)
		}
		lines = append(lines, commands.OrderLineInput{
			ProductID:  it.ID,
			Quantity:   it.Quantity,
			PriceCents: price.Cents(),
		})
	}

	return commands.PlaceOrderInput{
		UserID:          userID,
		Lines:           lines,
		ShippingAddress: r.ShippingAddress,
		PaymentMethod:   r.PaymentMethod,
		IdempotencyKey:  idempotencyKey,
	}, nil
}

type UpdateOrderRequest struct {
	ShippingAddress *string    `json:"shipping_address"`
	DeliveryTime    *time.Time `json:"delivery_time"`
}

func (r *UpdateOrderRequest) ToInput() commands.UpdateOrderDetailsInput {
	return commands.UpdateOrderDetailsInput{
		ShippingAddress: r.ShippingAddress,
		DeliveryTime:    r.DeliveryTime,
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListQuery struct {
	Page  *int `form:"page"`
	Limit *int `form:"limit"`
}

func (q *ListQuery) ToPageRequest() queries.PageRequest {
	return queries.PageRequest{
		Page:  queries.ValidatePage(patch.Coalesce(q.Page, 1)),
		Limit: queries.ValidateLimit(patch.Coalesce(q.Limit, queries.DefaultPageSize)),
	}
}
