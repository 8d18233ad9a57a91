//go:build unit

package inventory_test

import (
	"errors"
	"fmt"
	"testing"

	"storefront/internal/domain/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsufficientStockError(t *testing.T) {
	err := fmt.Errorf("checkout: %w", &inventory.InsufficientStockError{ProductID: 7, Requested: 5, Available: 2})

	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
	assert.NotErrorIs(t, err, inventory.ErrProductMissing)

	var target *inventory.InsufficientStockError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, int64(7), target.ProductID)
	assert.Equal(t, int32(2), target.Available)
	assert.Contains(t, err.Error(), "requested 5, available 2")
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, inventory.ValidateAmount(1))
	assert.ErrorIs(t, inventory.ValidateAmount(0), inventory.ErrInvalidAmount)
	assert.ErrorIs(t, inventory.ValidateAmount(-3), inventory.ErrInvalidAmount)
}
