package product

import (
	"errors"
	"time"
)

var (
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrProductNotFound  = errors.New("product not found")
)

type Product struct {
	id          int64
	title       Title
	description string
	price       Money
	quantity    int32
	categoryID  *int64
	featured    bool
	imageURL    string
	imagePath   string
	createdAt   time.Time
	updatedAt   time.Time
}

type Attributes struct {
	Title       string
	Description string
	PriceCents  int64
	Quantity    int32
	CategoryID  *int64
	Featured    bool
	ImageURL    string
	ImagePath   string
}

func NewProduct(attrs Attributes) (*Product, error) {
	title, err := NewTitle(attrs.Title)
	if err != nil {
		return nil, err
	}
	price, err := NewMoney(attrs.PriceCents)
	if err != nil {
		return nil, err
	}
	if attrs.Quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	return &Product{
		title:       title,
		description: attrs.Description,
		price:       price,
		quantity:    attrs.Quantity,
		categoryID:  attrs.CategoryID,
		featured:    attrs.Featured,
		imageURL:    attrs.ImageURL,
		imagePath:   attrs.ImagePath,
	}, nil
}

func ReconstructProduct(id int64, attrs Attributes, createdAt, updatedAt time.Time) *Product {
	return &Product{
		id:          id,
		title:       Title{value: attrs.Title},
		description: attrs.Description,
		price:       Money{cents: attrs.PriceCents},
		quantity:    attrs.Quantity,
		categoryID:  attrs.CategoryID,
		featured:    attrs.Featured,
		imageURL:    attrs.ImageURL,
		imagePath:   attrs.ImagePath,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Update describes a partial admin edit; nil fields are left unchanged.
type Update struct {
	Title       *string
	Description *string
	PriceCents  *int64
	Quantity    *int32
	CategoryID  *int64
	Featured    *bool
	ImageURL    *string
	ImagePath   *string
}

func (p *Product) Apply(u Update) error {
	if u.Title != nil {
		t, err := NewTitle(*u.Title)
		if err != nil {
			return err
		}
		p.title = t
	}
	if u.PriceCents != nil {
		m, err := NewMoney(*u.PriceCents)
		if err != nil {
			return err
		}
		p.price = m
	}
	if u.Quantity != nil {
		if *u.Quantity < 0 {
			return ErrNegativeQuantity
		}
		p.quantity = *u.Quantity
	}
	if u.Description != nil {
		p.description = *u.Description
	}
	if u.CategoryID != nil {
		p.categoryID = u.CategoryID
	}
	if u.Featured != nil {
		p.featured = *u.Featured
	}
	if u.ImageURL != nil {
		p.imageURL = *u.ImageURL
	}
	if u.ImagePath != nil {
		p.imagePath = *u.ImagePath
	}
	return nil
}

func (p *Product) InStock() bool { return p.quantity > 0 }

func (p *Product) ID() int64            { return p.id }
func (p *Product) Title() Title         { return p.title }
func (p *Product) Description() string  { return p.description }
func (p *Product) Price() Money         { return p.price }
func (p *Product) Quantity() int32      { return p.quantity }
func (p *Product) CategoryID() *int64   { return p.categoryID }
func (p *Product) Featured() bool       { return p.featured }
func (p *Product) ImageURL() string     { return p.imageURL }
func (p *Product) ImagePath() string    { return p.imagePath }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
