package readstore

import (
	"context"

	"storefront/internal/infra"
	sqlc "storefront/internal/infra/sqlc/generated"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/pkg/ptr"
	"storefront/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type ProductViewQueries interface {
	GetProductByID(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.Products, error)
	ListProducts(ctx context.Context, db sqlc.DBTX, arg sqlc.ListProductsParams) ([]sqlc.Products, error)
	CountProducts(ctx context.Context, db sqlc.DBTX, featured pgtype.Bool) (int64, error)
	ListAllProducts(ctx context.Context, db sqlc.DBTX, featured pgtype.Bool) ([]sqlc.Products, error)
}

// ProductReadStore returns raw image fields; URL resolution happens in the
// query layer.
type ProductReadStore struct {
	queries ProductViewQueries
	db      sqlc.DBTX
}

func NewProductReadStore(queries ProductViewQueries, db sqlc.DBTX) *ProductReadStore {
	return &ProductReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ProductReadStore) FindByID(ctx context.Context, id int64) (*queries.ProductView, error) {
	row, err := r.queries.GetProductByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get product by id", err)
	}
	return toProductView(row)
}

func (r *ProductReadStore) FindPage(ctx context.Context, featuredOnly bool, limit, offset int32) ([]queries.ProductView, error) {
	rows, err := r.queries.ListProducts(ctx, r.db, sqlc.ListProductsParams{
		Featured: featuredFilter(featuredOnly),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	return toProductViews(rows)
}

func (r *ProductReadStore) Count(ctx context.Context, featuredOnly bool) (int64, error) {
	n, err := r.queries.CountProducts(ctx, r.db, featuredFilter(featuredOnly))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count products", err)
	}
	return n, nil
}

func (r *ProductReadStore) FindAll(ctx context.Context, featuredOnly bool) ([]queries.ProductView, error) {
	rows, err := r.queries.ListAllProducts(ctx, r.db, featuredFilter(featuredOnly))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list all products", err)
	}
	return toProductViews(rows)
}

// featuredFilter maps "featured only" to a SQL filter; false means no filter.
func featuredFilter(featuredOnly bool) pgtype.Bool {
	if !featuredOnly {
		return pgconv.BoolPtrToPgtype(nil)
	}
	return pgconv.BoolPtrToPgtype(&featuredOnly)
}

func toProductViews(rows []sqlc.Products) ([]queries.ProductView, error) {
	out := make([]queries.ProductView, 0, len(rows))
	for _, row := range rows {
		v, err := toProductView(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func toProductView(row sqlc.Products) (*queries.ProductView, error) {
	price, err := pgconv.CentsFromNumeric(row.Price)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid product price", err)
	}
	return &queries.ProductView{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		PriceCents:  price,
		Quantity:    row.Quantity,
		CategoryID:  ptr.Int64FromPgtype(row.CategoryID),
		Featured:    row.Featured,
		ImageURL:    pgconv.StringPtrFromPgtype(row.ImageUrl),
		ImagePath:   pgconv.StringPtrFromPgtype(row.ImagePath),
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}
