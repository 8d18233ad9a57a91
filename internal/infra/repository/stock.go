package repository

import (
	"context"

	"storefront/internal/domain/inventory"
	"storefront/internal/infra"
	sqlc "storefront/internal/infra/sqlc/generated"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/shared"
)

type StockQueries interface {
	DecrementStock(ctx context.Context, db sqlc.DBTX, arg sqlc.DecrementStockParams) (sqlc.DecrementStockRow, error)
	IncrementStock(ctx context.Context, db sqlc.DBTX, arg sqlc.IncrementStockParams) (int32, error)
	GetStock(ctx context.Context, db sqlc.DBTX, id int64) (int32, error)
}

// StockLedger keeps product quantities. The conditional decrement is the
// only guard against overselling; it never reads the catalog cache.
type StockLedger struct {
	queries StockQueries
}

func NewStockLedger(queries StockQueries) *StockLedger {
	return &StockLedger{queries: queries}
}

func (s *StockLedger) Decrement(ctx context.Context, db sqlc.DBTX, productID int64, amount int32) (*shared.StockChange, error) {
	if err := inventory.ValidateAmount(amount); err != nil {
		return nil, err
	}

	row, err := s.queries.DecrementStock(ctx, db, sqlc.DecrementStockParams{Amount: amount, ID: productID})
	if err == nil {
		price, convErr := pgconv.CentsFromNumeric(row.Price)
		if convErr != nil {
			return nil, infra.WrapRepoErr("failed to read product price", convErr)
		}
		return &shared.StockChange{ProductID: productID, Remaining: row.Quantity, CurrentPriceCents: price}, nil
	}
	if !pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to decrement stock", err)
	}

	// No row matched: either the product is gone or it has too few units.
	available, readErr := s.queries.GetStock(ctx, db, productID)
	if readErr != nil {
		if pgconv.IsNoRows(readErr) {
			return nil, infra.WrapRepoErr("product not found", inventory.ErrProductMissing, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read stock", readErr)
	}

	shortage := &inventory.InsufficientStockError{ProductID: productID, Requested: amount, Available: available}
	return nil, infra.WrapRepoErr("insufficient stock", shortage, infra.KindConflict)
}

func (s *StockLedger) Increment(ctx context.Context, db sqlc.DBTX, productID int64, amount int32) (int32, error) {
	if err := inventory.ValidateAmount(amount); err != nil {
		return 0, err
	}

	remaining, err := s.queries.IncrementStock(ctx, db, sqlc.IncrementStockParams{Amount: amount, ID: productID})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("product not found", inventory.ErrProductMissing, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to increment stock", err)
	}
	return remaining, nil
}

func (s *StockLedger) Read(ctx context.Context, db sqlc.DBTX, productID int64) (int32, error) {
	quantity, err := s.queries.GetStock(ctx, db, productID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("product not found", inventory.ErrProductMissing, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to read stock", err)
	}
	return quantity, nil
}
