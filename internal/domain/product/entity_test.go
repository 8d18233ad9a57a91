//go:build unit

package product_test

import (
	"math"
	"strings"
	"testing"

	"storefront/internal/domain/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromDecimal(t *testing.T) {
	testCases := []struct {
		in      float64
		want    int64
		wantErr error
	}{
		{in: 100, want: 10000},
		{in: 19.99, want: 1999},
		{in: 0.125, want: 13},
		{in: 0, want: 0},
		{in: -1, wantErr: product.ErrNegativePrice},
		{in: math.NaN(), wantErr: product.ErrInvalidPrice},
		{in: 9999999999.99, want: product.MaxCents},
		{in: 10000000000, wantErr: product.ErrInvalidPrice},
		{in: 1e300, wantErr: product.ErrInvalidPrice},
		{in: -1e300, wantErr: product.ErrNegativePrice},
	}

	for _, tc := range testCases {
		m, err := product.MoneyFromDecimal(tc.in)
		if tc.wantErr != nil {
			assert.ErrorIs(t, err, tc.wantErr)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, m.Cents())
	}

	assert.Equal(t, "39.98", product.MustMoney(1999).Times(2).String())
}

func TestMoneyBounds(t *testing.T) {
	_, err := product.NewMoney(product.MaxCents + 1)
	assert.ErrorIs(t, err, product.ErrInvalidPrice)

	big := product.MustMoney(product.MaxCents / 2)

	got, ok := big.CheckedTimes(2)
	assert.True(t, ok)
	assert.Equal(t, product.MaxCents-1, got.Cents())

	_, ok = big.CheckedTimes(3)
	assert.False(t, ok)

	_, ok = product.MustMoney(product.MaxCents).CheckedAdd(product.MustMoney(1))
	assert.False(t, ok)

	sum, ok := big.CheckedAdd(product.MustMoney(1))
	assert.True(t, ok)
	assert.Equal(t, product.MaxCents/2+1, sum.Cents())
}

func TestNewProduct(t *testing.T) {
	valid := product.Attributes{Title: "Mug", PriceCents: 1500, Quantity: 3}

	t.Run("valid", func(t *testing.T) {
		p, err := product.NewProduct(valid)
		require.NoError(t, err)
		assert.Equal(t, "Mug", p.Title().String())
		assert.True(t, p.InStock())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(a *product.Attributes)
			errIs  error
		}{
			{name: "blank title", mutate: func(a *product.Attributes) { a.Title = "  " }, errIs: product.ErrEmptyTitle},
			{name: "long title", mutate: func(a *product.Attributes) { a.Title = strings.Repeat("x", product.MaxTitleLength+1) }, errIs: product.ErrTitleTooLong},
			{name: "negative price", mutate: func(a *product.Attributes) { a.PriceCents = -1 }, errIs: product.ErrNegativePrice},
			{name: "negative quantity", mutate: func(a *product.Attributes) { a.Quantity = -1 }, errIs: product.ErrNegativeQuantity},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				attrs := valid
				tc.mutate(&attrs)
				_, err := product.NewProduct(attrs)
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})

	t.Run("apply partial update", func(t *testing.T) {
		p, err := product.NewProduct(valid)
		require.NoError(t, err)

		qty := int32(0)
		featured := true
		require.NoError(t, p.Apply(product.Update{Quantity: &qty, Featured: &featured}))
		assert.False(t, p.InStock())
		assert.True(t, p.Featured())
		assert.Equal(t, int64(1500), p.Price().Cents())

		bad := int32(-2)
		assert.ErrorIs(t, p.Apply(product.Update{Quantity: &bad}), product.ErrNegativeQuantity)
	})
}
