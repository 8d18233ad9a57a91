package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductMissing    = errors.New("product missing")
	ErrInvalidAmount     = errors.New("stock amount must be positive")
)

// InsufficientStockError reports the product whose conditional decrement
// failed and the quantity that was on hand at that moment.
type InsufficientStockError struct {
	ProductID int64
	Requested int32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ProductMissingError names a product that no longer exists.
type ProductMissingError struct {
	ProductID int64
}

func (e *ProductMissingError) Error() string {
	return fmt.Sprintf("product %d missing", e.ProductID)
}

func (e *ProductMissingError) Is(target error) bool {
	return target == ErrProductMissing
}

func ValidateAmount(amount int32) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
