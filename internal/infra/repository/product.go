package repository

import (
	"context"

	"storefront/internal/domain/product"
	"storefront/internal/infra"
	"storefront/internal/infra/repository/converter"
	sqlc "storefront/internal/infra/sqlc/generated"
	"storefront/internal/pkg/pgconv"
)

type ProductWriteQueries interface {
	CreateProduct(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateProductParams) (sqlc.Products, error)
	UpdateProduct(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateProductParams) (sqlc.Products, error)
	DeleteProduct(ctx context.Context, db sqlc.DBTX, id int64) (int64, error)
}

type ProductRepository struct {
	queries ProductWriteQueries
}

func NewProductRepository(queries ProductWriteQueries) *ProductRepository {
	return &ProductRepository{queries: queries}
}

func (r *ProductRepository) Create(ctx context.Context, db sqlc.DBTX, p *product.Product) (int64, error) {
	row, err := r.queries.CreateProduct(ctx, db, converter.ProductToCreateParams(p))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create product", err)
	}
	return row.ID, nil
}

func (r *ProductRepository) Update(ctx context.Context, db sqlc.DBTX, p *product.Product) error {
	_, err := r.queries.UpdateProduct(ctx, db, converter.ProductToUpdateParams(p))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to update product", err)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, db sqlc.DBTX, id int64) error {
	n, err := r.queries.DeleteProduct(ctx, db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete product", err)
	}
	if n == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "product not found")
	}
	return nil
}
