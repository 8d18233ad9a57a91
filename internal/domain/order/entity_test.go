//go:build unit

package order_test

import (
	"testing"
	"time"

	"storefront/internal/domain/order"
	"storefront/internal/domain/product"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id int64, qty int32, cents int64) order.Line {
	return order.Line{ProductID: id, Quantity: qty, UnitPrice: product.MustMoney(cents)}
}

func TestNewOrder(t *testing.T) {
	userID := uuid.New()

	t.Run("total is the sum of price times quantity", func(t *testing.T) {
		o, err := order.NewOrder(userID, []order.Line{line(1, 2, 10000), line(2, 3, 250)}, " 1 Main St ", "")
		require.NoError(t, err)

		assert.Equal(t, int64(20750), o.Total().Cents())
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, "1 Main St", o.ShippingAddress())
		assert.Equal(t, order.PaymentMethodCard, o.PaymentMethod())
		assert.NotEqual(t, uuid.Nil, o.ID())
		assert.Len(t, o.Lines(), 2)
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name    string
			lines   []order.Line
			address string
			errIs   error
		}{
			{name: "empty cart", lines: nil, address: "x", errIs: order.ErrEmptyCart},
			{name: "zero quantity", lines: []order.Line{line(1, 0, 100)}, address: "x", errIs: order.ErrInvalidLine},
			{name: "bad product id", lines: []order.Line{line(0, 1, 100)}, address: "x", errIs: order.ErrInvalidLine},
			{name: "blank address", lines: []order.Line{line(1, 1, 100)}, address: "  ", errIs: order.ErrShippingAddressRequired},
			{name: "line total out of range", lines: []order.Line{line(1, 2_000_000, product.MaxCents / 1_000_000)}, address: "x", errIs: order.ErrTotalTooLarge},
			{name: "order total out of range", lines: []order.Line{line(1, 1, product.MaxCents), line(2, 1, 1)}, address: "x", errIs: order.ErrTotalTooLarge},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := order.NewOrder(userID, tc.lines, tc.address, order.PaymentMethodCard)
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	owner := uuid.New()
	newPending := func() *order.Order {
		return order.ReconstructOrder(uuid.New(), owner, []order.Line{line(1, 1, 100)}, order.StatusPending,
			"addr", order.PaymentMethodCard, product.MustMoney(100), nil, time.Now(), time.Now())
	}

	t.Run("owner check", func(t *testing.T) {
		o := newPending()
		assert.NoError(t, o.EnsureOwnedBy(owner))
		assert.ErrorIs(t, o.EnsureOwnedBy(uuid.New()), order.ErrNotOwner)
	})

	t.Run("cancel only while pending", func(t *testing.T) {
		o := newPending()
		require.NoError(t, o.Cancel())
		assert.Equal(t, order.StatusCancelled, o.Status())
		assert.ErrorIs(t, o.Cancel(), order.ErrNotPending)
	})

	t.Run("update details only while pending", func(t *testing.T) {
		o := newPending()
		addr := "2 Side St"
		when := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, o.UpdateDetails(&addr, &when))
		assert.Equal(t, addr, o.ShippingAddress())
		assert.Equal(t, when, *o.DeliveryTime())

		require.NoError(t, o.SetStatus(order.StatusShipped))
		assert.ErrorIs(t, o.UpdateDetails(&addr, nil), order.ErrNotPending)
	})

	t.Run("status validation", func(t *testing.T) {
		_, err := order.ParseStatus("lost")
		assert.ErrorIs(t, err, order.ErrInvalidStatus)
		st, err := order.ParseStatus("delivered")
		require.NoError(t, err)
		assert.Equal(t, order.StatusDelivered, st)
	})
}
