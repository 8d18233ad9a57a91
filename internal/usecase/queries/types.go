package queries

import (
	"time"

	"github.com/google/uuid"
)

// ProductView is the catalog representation served to shoppers. ImageURL is
// already resolved against the storage base URL.
type ProductView struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Quantity    int32     `json:"quantity"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	Featured    bool      `json:"featured"`
	ImageURL    *string   `json:"image_url,omitempty"`
	ImagePath   *string   `json:"image_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CatalogSnapshot is one read cache entry: the full product list for one
// featured filter, stamped with the time it was read from the store.
type CatalogSnapshot struct {
	Products []ProductView `json:"products"`
	TakenAt  time.Time     `json:"taken_at"`
}

type OrderItemView struct {
	ProductID  int64 `json:"product_id"`
	Quantity   int32 `json:"quantity"`
	PriceCents int64 `json:"price_cents"`
}

type OrderView struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	UserEmail       string          `json:"user_email,omitempty"`
	Status          string          `json:"status"`
	TotalCents      int64           `json:"total_cents"`
	ShippingAddress string          `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	DeliveryTime    *time.Time      `json:"delivery_time,omitempty"`
	Items           []OrderItemView `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
