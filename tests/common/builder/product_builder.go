//go:build unit || e2e

package builder

import (
	"time"

	reqdto "storefront/internal/handler/dto/request"
	"storefront/internal/usecase/queries"
)

type ProductBuilder struct {
	ID          int64
	Title       string
	Description string
	PriceCents  int64
	Quantity    int32
	Featured    bool
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:          1,
		Title:       "Desk Lamp",
		Description: "Warm white LED lamp",
		PriceCents:  10000,
		Quantity:    5,
	}
}

func (p *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(p)
	return p
}

// Build methods
func (p *ProductBuilder) BuildView() queries.ProductView {
	now := time.Now().Truncate(time.Second)
	return queries.ProductView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Quantity:    p.Quantity,
		Featured:    p.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *ProductBuilder) BuildCreateRequestDTO() reqdto.CreateProductRequest {
	return reqdto.CreateProductRequest{
		Title:       p.Title,
		Description: p.Description,
		Price:       float64(p.PriceCents) / 100,
		Quantity:    p.Quantity,
		Featured:    p.Featured,
	}
}
