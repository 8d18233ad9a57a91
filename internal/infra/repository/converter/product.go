package converter

import (
	"storefront/internal/domain/product"
	sqlc "storefront/internal/infra/sqlc/generated"
	"storefront/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func ProductToCreateParams(p *product.Product) sqlc.CreateProductParams {
	return sqlc.CreateProductParams{
		Title:       p.Title().String(),
		Description: p.Description(),
		Price:       pgconv.CentsToNumeric(p.Price().Cents()),
		Quantity:    p.Quantity(),
		CategoryID:  pgconv.Int64PtrToPgtype(p.CategoryID()),
		Featured:    p.Featured(),
		ImageUrl:    optionalText(p.ImageURL()),
		ImagePath:   optionalText(p.ImagePath()),
	}
}

func ProductToUpdateParams(p *product.Product) sqlc.UpdateProductParams {
	c := ProductToCreateParams(p)
	return sqlc.UpdateProductParams{
		ID:          p.ID(),
		Title:       c.Title,
		Description: c.Description,
		Price:       c.Price,
		Quantity:    c.Quantity,
		CategoryID:  c.CategoryID,
		Featured:    c.Featured,
		ImageUrl:    c.ImageUrl,
		ImagePath:   c.ImagePath,
	}
}

func optionalText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

func ProductFromRow(row sqlc.Products) (*product.Product, error) {
	price, err := pgconv.CentsFromNumeric(row.Price)
	if err != nil {
		return nil, err
	}
	var imageURL, imagePath string
	if row.ImageUrl.Valid {
		imageURL = row.ImageUrl.String
	}
	if row.ImagePath.Valid {
		imagePath = row.ImagePath.String
	}
	var categoryID *int64
	if row.CategoryID.Valid {
		id := row.CategoryID.Int64
		categoryID = &id
	}
	return product.ReconstructProduct(row.ID, product.Attributes{
		Title:       row.Title,
		Description: row.Description,
		PriceCents:  price,
		Quantity:    row.Quantity,
		CategoryID:  categoryID,
		Featured:    row.Featured,
		ImageURL:    imageURL,
		ImagePath:   imagePath,
	}, pgconv.TimeFromPgtype(row.CreatedAt), pgconv.TimeFromPgtype(row.UpdatedAt)), nil
}
