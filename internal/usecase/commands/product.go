package commands

import (
	"context"
	"errors"

	"storefront/internal/domain/product"
	"storefront/internal/infra"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/shared"
)

var (
	ErrProductNotFound   = errs.New("product not found")
	ErrInvalidProduct    = errs.New("invalid product")
	ErrProductReferenced = errs.New("product is referenced by orders")
)

type CreateProductInput struct {
	Title       string
	Description string
	PriceCents  int64
	Quantity    int32
	CategoryID  *int64
	Featured    bool
	ImageURL    string
	ImagePath   string
}

type CreateProductResult struct {
	ProductID int64
}

// ProductCommands are admin catalog writes. They never touch the catalog
// cache, so listings may show the previous data until the snapshot expires.
type ProductCommands interface {
	CreateProduct(ctx context.Context, in CreateProductInput) (*CreateProductResult, error)
	UpdateProduct(ctx context.Context, id int64, in product.Update) error
	DeleteProduct(ctx context.Context, id int64) error
}

type productUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewProductUseCase(uow shared.UnitOfWork) ProductCommands {
	return &productUseCaseImpl{uow: uow}
}

func (uc *productUseCaseImpl) CreateProduct(ctx context.Context, in CreateProductInput) (*CreateProductResult, error) {
	p, err := product.NewProduct(product.Attributes{
		Title:       in.Title,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Quantity:    in.Quantity,
		CategoryID:  in.CategoryID,
		Featured:    in.Featured,
		ImageURL:    in.ImageURL,
		ImagePath:   in.ImagePath,
	})
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidProduct)
	}

	var id int64
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var cerr error
		id, cerr = tx.Products().Create(ctx, tx.DB(), p)
		return cerr
	})
	if err != nil {
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, errs.Mark(err, ErrInvalidProduct)
		}
		return nil, err
	}
	return &CreateProductResult{ProductID: id}, nil
}

func (uc *productUseCaseImpl) UpdateProduct(ctx context.Context, id int64, in product.Update) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Reads().ProductByID(ctx, id)
		if err != nil {
			return err
		}
		if err := p.Apply(in); err != nil {
			return errs.Mark(err, ErrInvalidProduct)
		}
		return tx.Products().Update(ctx, tx.DB(), p)
	})
	return markProductWrite(err)
}

func (uc *productUseCaseImpl) DeleteProduct(ctx context.Context, id int64) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Products().Delete(ctx, tx.DB(), id)
	})
	return markProductWrite(err)
}

func markProductWrite(err error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrProductNotFound)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, ErrProductReferenced)
	case errors.Is(err, product.ErrNegativeQuantity):
		return errs.Mark(err, ErrInvalidProduct)
	default:
		return err
	}
}
