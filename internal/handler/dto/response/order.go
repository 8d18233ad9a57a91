package response

import (
	"storefront/internal/domain/product"
	"storefront/internal/usecase/queries"
)

type OrderItemResponse struct {
	ProductID int64   `json:"product_id"`
	Quantity  int32   `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	UserEmail       string              `json:"user_email,omitempty"`
	Status          string              `json:"status"`
	TotalAmount     float64             `json:"total_amount"`
	ShippingAddress string              `json:"shipping_address"`
	PaymentMethod   string              `json:"payment_method"`
	DeliveryTime    *int64              `json:"delivery_time,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       int64               `json:"created_at"`
	UpdatedAt       int64               `json:"updated_at"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	items := make([]OrderItemResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     product.MustMoney(it.PriceCents).Decimal(),
		}
	}

	res := &OrderResponse{
		ID:              v.ID.String(),
		UserID:          v.UserID.String(),
		UserEmail:       v.UserEmail,
		Status:          v.Status,
		TotalAmount:     product.MustMoney(v.TotalCents).Decimal(),
		ShippingAddress: v.ShippingAddress,
		PaymentMethod:   v.PaymentMethod,
		Items:           items,
		CreatedAt:       v.CreatedAt.Unix(),
		UpdatedAt:       v.UpdatedAt.Unix(),
	}
	if v.DeliveryTime != nil {
		ts := v.DeliveryTime.Unix()
		res.DeliveryTime = &ts
	}
	return res
}

func FromOrderViews(vs []*queries.OrderView) []*OrderResponse {
	res := make([]*OrderResponse, len(vs))
	for i, v := range vs {
		res[i] = FromOrderView(v)
	}
	return res
}

type OrderListResponse struct {
	Orders []*OrderResponse `json:"orders"`
	queries.PageInfo
}

// Reason codes carried in ConflictDetail.
const (
	ReasonIdempotencyInProgress = "idempotency_in_progress"
	ReasonIdempotencyKeyReused  = "idempotency_key_reused"
)

// ConflictDetail tells clients which idempotency conflict they hit.
type ConflictDetail struct {
	Reason string `json:"reason"`
}

// InsufficientStockDetail is the 409 detail payload for a failed stock reservation.
type InsufficientStockDetail struct {
	ProductID int64 `json:"productId"`
	Requested int32 `json:"requested"`
	Available int32 `json:"available"`
}
