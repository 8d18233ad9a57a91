package response

import (
	"storefront/internal/domain/product"
	"storefront/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

// ProductResponse prices are decimals in the store currency.
type ProductResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price" copier:"-"`
	Quantity    int32   `json:"quantity"`
	CategoryID  *int64  `json:"category_id,omitempty"`
	Featured    bool    `json:"featured"`
	ImageURL    *string `json:"image_url,omitempty"`
	CreatedAt   int64   `json:"created_at" copier:"-"`
	UpdatedAt   int64   `json:"updated_at" copier:"-"`
}

func FromProductView(v *queries.ProductView) *ProductResponse {
	res := &ProductResponse{}
	_ = copier.Copy(res, v)
	res.Price = product.MustMoney(v.PriceCents).Decimal()
	res.CreatedAt = v.CreatedAt.Unix()
	res.UpdatedAt = v.UpdatedAt.Unix()
	return res
}

func FromProductViews(vs []queries.ProductView) []*ProductResponse {
	res := make([]*ProductResponse, len(vs))
	for i := range vs {
		res[i] = FromProductView(&vs[i])
	}
	return res
}

type ProductListResponse struct {
	Products   []*ProductResponse `json:"products"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
	Cached     bool               `json:"cached"`
}

func FromProductPage(p *queries.ProductPage) *ProductListResponse {
	return &ProductListResponse{
		Products:   FromProductViews(p.Products),
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
		Cached:     p.Cached,
	}
}

type CreateProductResponse struct {
	ID int64 `json:"id"`
}
