package request

import (
	"errors"

	"storefront/internal/domain/product"
	"storefront/internal/pkg/patch"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"
)

var ErrInvalidPagination = errors.New("page and limit must be positive integers")

type ListProductsQuery struct {
	Page     *int `form:"page"`
	Limit    *int `form:"limit"`
	Featured bool `form:"featured"`
}

// ToRequest fills absent page/limit with the first page at the default size.
func (q *ListProductsQuery) ToRequest(defaultLimit int) (queries.ProductListRequest, error) {
	page := patch.Coalesce(q.Page, 1)
	limit := patch.Coalesce(q.Limit, defaultLimit)
	if page < 1 || limit < 1 {
		return queries.ProductListRequest{}, ErrInvalidPagination
	}
	return queries.ProductListRequest{
		Featured: q.Featured,
		Page:     queries.PageRequest{Page: page, Limit: limit},
	}, nil
}

type CreateProductRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"max=5000"`
	Price       float64 `json:"price" binding:"gte=0"`
	Quantity    int32   `json:"quantity" binding:"gte=0"`
	CategoryID  *int64  `json:"category_id"`
	Featured    bool    `json:"featured"`
	ImageURL    string  `json:"image_url"`
	ImagePath   string  `json:"image_path"`
}

func (r *CreateProductRequest) ToInput() (commands.CreateProductInput, error) {
	price, err := product.MoneyFromDecimal(r.Price)
	if err != nil {
		return commands.CreateProductInput{}, err
	}
	return commands.CreateProductInput{
		Title:       r.Title,
		Description: r.Description,
		PriceCents:  price.Cents(),
		Quantity:    r.Quantity,
		CategoryID:  r.CategoryID,
		Featured:    r.Featured,
		ImageURL:    r.ImageURL,
		ImagePath:   r.ImagePath,
	}, nil
}

type UpdateProductRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=5000"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Quantity    *int32   `json:"quantity" binding:"omitempty,gte=0"`
	CategoryID  *int64   `json:"category_id"`
	Featured    *bool    `json:"featured"`
	ImageURL    *string  `json:"image_url"`
	ImagePath   *string  `json:"image_path"`
}

var ErrEmptyUpdate = errors.New("no fields to update")

func (r *UpdateProductRequest) ToUpdate() (product.Update, error) {
	if !patch.AnySet(r.Title, r.Description, r.Price, r.Quantity, r.CategoryID, r.Featured, r.ImageURL, r.ImagePath) {
		return product.Update{}, ErrEmptyUpdate
	}

	u := product.Update{
		Title:       r.Title,
		Description: r.Description,
		Quantity:    r.Quantity,
		CategoryID:  r.CategoryID,
		Featured:    r.Featured,
		ImageURL:    r.ImageURL,
		ImagePath:   r.ImagePath,
	}
	if r.Price != nil {
		price, err := product.MoneyFromDecimal(*r.Price)
		if err != nil {
			return product.Update{}, err
		}
		cents := price.Cents()
		u.PriceCents = &cents
	}
	return u, nil
}
