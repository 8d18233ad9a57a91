//go:build unit

package commands

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/domain/inventory"
	"storefront/internal/infra"
	sqlc "storefront/internal/infra/sqlc/generated"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/queries"
	"storefront/internal/usecase/shared"
	queriesmock "storefront/tests/mock/queries"
	sharedmock "storefront/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type checkoutFixture struct {
	uow     *sharedmock.MockUnitOfWork
	tx      *sharedmock.MockTx
	stock   *sharedmock.MockStockLedger
	orders  *sharedmock.MockOrderRepository
	idem    *sharedmock.MockIdempotencyRepository
	outbox  *sharedmock.MockOutboxRepository
	reads   *sharedmock.MockCommandReads
	queries *queriesmock.MockOrderQueries
	now     time.Time
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	ctrl := gomock.NewController(t)
	f := &checkoutFixture{
		uow:     sharedmock.NewMockUnitOfWork(ctrl),
		tx:      sharedmock.NewMockTx(ctrl),
		stock:   sharedmock.NewMockStockLedger(ctrl),
		orders:  sharedmock.NewMockOrderRepository(ctrl),
		idem:    sharedmock.NewMockIdempotencyRepository(ctrl),
		outbox:  sharedmock.NewMockOutboxRepository(ctrl),
		reads:   sharedmock.NewMockCommandReads(ctrl),
		queries: queriesmock.NewMockOrderQueries(ctrl),
		now:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	f.tx.EXPECT().Stock().Return(f.stock).AnyTimes()
	f.tx.EXPECT().Orders().Return(f.orders).AnyTimes()
	f.tx.EXPECT().Idempotency().Return(f.idem).AnyTimes()
	f.tx.EXPECT().Outbox().Return(f.outbox).AnyTimes()
	f.tx.EXPECT().DB().Return(nil).AnyTimes()
	f.uow.EXPECT().Direct().Return(f.tx).AnyTimes()
	f.uow.EXPECT().CommandReads().Return(f.reads).AnyTimes()
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		}).AnyTimes()
	return f
}

func (f *checkoutFixture) useCase(mode config.CheckoutMode) CheckoutCommands {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCheckoutUseCase(f.uow, f.queries, clock.NewMockClock(f.now), logger, CheckoutOptions{Mode: mode})
}

func twoLineInput() PlaceOrderInput {
	return PlaceOrderInput{
		UserID: uuid.New(),
		Lines: []OrderLineInput{
			{ProductID: 1, Quantity: 2, PriceCents: 10000},
			{ProductID: 7, Quantity: 1, PriceCents: 2550},
		},
		ShippingAddress: "1 Main St",
		PaymentMethod:   "card",
	}
}

// deletedProductLine is what the order repository returns when a line's
// product row is gone.
func deletedProductLine(productID int64) error {
	return infra.WrapRepoErr("order line references a missing product",
		&inventory.ProductMissingError{ProductID: productID}, infra.KindNotFound)
}

func TestPlaceOrder_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *PlaceOrderInput)
		want   error
	}{
		{
			name:   "empty cart",
			mutate: func(in *PlaceOrderInput) { in.Lines = nil },
			want:   ErrEmptyCart,
		},
		{
			name:   "blank shipping address",
			mutate: func(in *PlaceOrderInput) { in.ShippingAddress = "   " },
			want:   ErrShippingAddressRequired,
		},
		{
			name:   "zero quantity",
			mutate: func(in *PlaceOrderInput) { in.Lines[0].Quantity = 0 },
			want:   ErrInvalidOrderLine,
		},
		{
			name:   "negative price",
			mutate: func(in *PlaceOrderInput) { in.Lines[1].PriceCents = -1 },
			want:   ErrInvalidOrderLine,
		},
		{
			name:   "price beyond the storable range",
			mutate: func(in *PlaceOrderInput) { in.Lines[1].PriceCents = 1_000_000_000_000 },
			want:   ErrInvalidOrderLine,
		},
		{
			name:   "total beyond the storable range",
			mutate: func(in *PlaceOrderInput) { in.Lines[0].PriceCents, in.Lines[0].Quantity = 999_999_999_999, 2 },
			want:   ErrInvalidOrderLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckoutFixture(t)
			in := twoLineInput()
			tt.mutate(&in)

			res, err := f.useCase(config.CheckoutModeTransaction).PlaceOrder(context.Background(), in)

			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errs.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestPlaceOrder_Transaction(t *testing.T) {
	t.Run("success writes header, lines, stock and event", func(t *testing.T) {
		f := newCheckoutFixture(t)
		in := twoLineInput()

		var event shared.OutboxEvent
		gomock.InOrder(
			f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.now, nil),
			f.orders.EXPECT().InsertLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Len(2)).Return(nil),
			f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), int64(1), int32(2)).
				Return(&shared.StockChange{ProductID: 1, Remaining: 3, CurrentPriceCents: 10000}, nil),
			f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), int64(7), int32(1)).
				Return(&shared.StockChange{ProductID: 7, Remaining: 0, CurrentPriceCents: 2999}, nil),
			f.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ sqlc.DBTX, e shared.OutboxEvent) error {
					event = e
					return nil
				}),
		)

		res, err := f.useCase(config.CheckoutModeTransaction).PlaceOrder(context.Background(), in)

		require.NoError(t, err)
		require.NotNil(t, res.Order)
		assert.False(t, res.IsReplayed)
		assert.Equal(t, "pending", res.Order.Status)
		assert.Equal(t, int64(22550), res.Order.TotalCents)
		assert.Equal(t, in.UserID, res.Order.UserID)
		assert.Len(t, res.Order.Items, 2)
		// client price is kept even when the catalog moved
		assert.Equal(t, int64(2550), res.Order.Items[1].PriceCents)

		assert.Equal(t, shared.EventOrderCreated, event.EventType)
		assert.Equal(t, res.Order.ID, event.AggregateID)
		var payload orderEventPayload
		require.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, int64(22550), payload.TotalCents)
		assert.Len(t, payload.Items, 2)
	})

	t.Run("insufficient stock aborts before the event", func(t *testing.T) {
		f := newCheckoutFixture(t)
		shortage := &inventory.InsufficientStockError{ProductID: 7, Requested: 1, Available: 0}

		f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.now, nil)
		f.orders.EXPECT().InsertLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), int64(1), int32(2)).
			Return(&shared.StockChange{CurrentPriceCents: 10000}, nil)
		f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), int64(7), int32(1)).Return(nil, shortage)
		f.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := f.useCase(config.CheckoutModeTransaction).PlaceOrder(context.Background(), twoLineInput())

		var got *inventory.InsufficientStockError
		require.True(t, errors.As(err, &got))
		assert.Equal(t, int64(7), got.ProductID)
		assert.Equal(t, int32(0), got.Available)
		assert.True(t, errors.Is(err, inventory.ErrInsufficientStock))
	})

	t.Run("missing product reports zero available", func(t *testing.T) {
		f := newCheckoutFixture(t)

		f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.now, nil)
		f.orders.EXPECT().InsertLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), int64(1), int32(2)).Return(nil, inventory.ErrProductMissing)

		_, err := f.useCase(config.CheckoutModeTransaction).PlaceOrder(context.Background(), twoLineInput())

		var got *inventory.InsufficientStockError
		require.True(t, errors.As(err, &got))
		assert.Equal(t, int64(1), got.ProductID)
		assert.Equal(t, int32(2), got.Requested)
		assert.Equal(t, int32(0), got.Available)
	})

	t.Run("line for a deleted product reports zero available", func(t *testing.T) {
		f := newCheckoutFixture(t)

		f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.now, nil)
		f.orders.EXPECT().InsertLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(deletedProductLine(7))
		f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := f.useCase(config.CheckoutModeTransaction).PlaceOrder(context.Background(), twoLineInput())

		var got *inventory.InsufficientStockError
		require.True(t, errors.As(err, &got), "got %v", err)
		assert.Equal(t, int64(7), got.ProductID)
		assert.Equal(t, int32(1), got.Requested)
		assert.Equal(t, int32(0), got.Available)
		assert.False(t, errs.Is(err, ErrOrderCreateFailed))
	})

	t.Run("unavailable store is reported as such", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(time.Time{}, infra.NewRepoErr(infra.KindUnavailable, "connection refused"))

		_, err := f.useCase(config.CheckoutModeTransaction).PlaceOrder(context.Background(), twoLineInput())

		assert.True(t, errs.Is(err, ErrStoreUnavailable))
	})

	t.Run("other store failures are order creation failures", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.now, nil)
		f.orders.EXPECT().InsertLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)

		_, err := f.useCase(config.CheckoutModeTransaction).PlaceOrder(context.Background(), twoLineInput())

		assert.True(t, errs.Is(err, ErrOrderCreateFailed))
	})
}

func TestPlaceOrder_Saga(t *testing.T) {
	t.Run("success runs steps without a transaction", func(t *testing.T) {
		f := newCheckoutFixture(t)

		f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.now, nil)
		f.orders.EXPECT().InsertLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&shared.StockChange{CurrentPriceCents: 10000}, nil).Times(2)
		f.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.useCase(config.CheckoutModeSaga).PlaceOrder(context.Background(), twoLineInput())

		require.NoError(t, err)
		assert.Equal(t, int64(22550), res.Order.TotalCents)
	})

	t.Run("shortage restocks decremented lines and deletes the header", func(t *testing.T) {
		f := newCheckoutFixture(t)
		shortage := &inventory.InsufficientStockError{ProductID: 7, Requested: 1, Available: 0}

		gomock.InOrder(
			f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.now, nil),
			f.orders.EXPECT().InsertLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), int64(1), int32(2)).
				Return(&shared.StockChange{CurrentPriceCents: 10000}, nil),
			f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), int64(7), int32(1)).Return(nil, shortage),
			f.stock.EXPECT().Increment(gomock.Any(), gomock.Any(), int64(1), int32(2)).Return(int32(5), nil),
			f.orders.EXPECT().DeleteHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)
		f.stock.EXPECT().Increment(gomock.Any(), gomock.Any(), int64(7), gomock.Any()).Times(0)

		_, err := f.useCase(config.CheckoutModeSaga).PlaceOrder(context.Background(), twoLineInput())

		var got *inventory.InsufficientStockError
		require.True(t, errors.As(err, &got))
		assert.Equal(t, int64(7), got.ProductID)
	})

	t.Run("failed line insert deletes the header only", func(t *testing.T) {
		f := newCheckoutFixture(t)

		f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.now, nil)
		f.orders.EXPECT().InsertLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)
		f.orders.EXPECT().DeleteHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := f.useCase(config.CheckoutModeSaga).PlaceOrder(context.Background(), twoLineInput())

		assert.True(t, errs.Is(err, ErrOrderCreateFailed))
	})

	t.Run("line for a deleted product deletes the header and reports zero available", func(t *testing.T) {
		f := newCheckoutFixture(t)

		gomock.InOrder(
			f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.now, nil),
			f.orders.EXPECT().InsertLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(deletedProductLine(1)),
			f.orders.EXPECT().DeleteHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)
		f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		f.stock.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := f.useCase(config.CheckoutModeSaga).PlaceOrder(context.Background(), twoLineInput())

		var got *inventory.InsufficientStockError
		require.True(t, errors.As(err, &got), "got %v", err)
		assert.Equal(t, int64(1), got.ProductID)
		assert.Equal(t, int32(2), got.Requested)
		assert.Equal(t, int32(0), got.Available)
	})

	t.Run("restock failure surfaces as compensation failure", func(t *testing.T) {
		f := newCheckoutFixture(t)

		f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.now, nil)
		f.orders.EXPECT().InsertLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), int64(1), int32(2)).
			Return(&shared.StockChange{CurrentPriceCents: 10000}, nil)
		f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), int64(7), int32(1)).
			Return(nil, &inventory.InsufficientStockError{ProductID: 7, Requested: 1})
		f.stock.EXPECT().Increment(gomock.Any(), gomock.Any(), int64(1), int32(2)).Return(int32(0), assert.AnError)
		f.orders.EXPECT().DeleteHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.useCase(config.CheckoutModeSaga).PlaceOrder(context.Background(), twoLineInput())

		assert.True(t, errs.Is(err, ErrCompensationFailed))
	})

	t.Run("restock of a deleted product is skipped", func(t *testing.T) {
		f := newCheckoutFixture(t)

		f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.now, nil)
		f.orders.EXPECT().InsertLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), int64(1), int32(2)).
			Return(&shared.StockChange{CurrentPriceCents: 10000}, nil)
		f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), int64(7), int32(1)).
			Return(nil, &inventory.InsufficientStockError{ProductID: 7, Requested: 1})
		f.stock.EXPECT().Increment(gomock.Any(), gomock.Any(), int64(1), int32(2)).Return(int32(0), inventory.ErrProductMissing)
		f.orders.EXPECT().DeleteHeader(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(infra.NewRepoErr(infra.KindNotFound, "order not found"))

		_, err := f.useCase(config.CheckoutModeSaga).PlaceOrder(context.Background(), twoLineInput())

		assert.False(t, errs.Is(err, ErrCompensationFailed))
		assert.True(t, errors.Is(err, inventory.ErrInsufficientStock))
	})
}

func TestPlaceOrder_Idempotency(t *testing.T) {
	key := uuid.New()

	t.Run("first request completes the key", func(t *testing.T) {
		f := newCheckoutFixture(t)
		in := twoLineInput()
		in.IdempotencyKey = &key

		f.idem.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, in.UserID, placeOrderEndpoint,
			calculateRequestHash(in), f.now.Add(24*time.Hour)).Return(true, nil)
		f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.now, nil)
		f.orders.EXPECT().InsertLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&shared.StockChange{CurrentPriceCents: 10000}, nil).Times(2)
		f.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.idem.EXPECT().UpdateStatusCompleted(gomock.Any(), gomock.Any(), key, in.UserID, gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.useCase(config.CheckoutModeTransaction).PlaceOrder(context.Background(), in)

		require.NoError(t, err)
		assert.False(t, res.IsReplayed)
	})

	t.Run("completed key replays the stored order", func(t *testing.T) {
		f := newCheckoutFixture(t)
		in := twoLineInput()
		in.IdempotencyKey = &key
		orderID := uuid.New()
		stored := &queries.OrderView{ID: orderID, UserID: in.UserID, Status: "pending", TotalCents: 22550}

		f.idem.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, in.UserID, gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, in.UserID).Return(&shared.IdempotencyRecord{
			Key:           key,
			UserID:        in.UserID,
			Status:        shared.IdempotencyStatusCompleted,
			RequestHash:   calculateRequestHash(in),
			ResultOrderID: &orderID,
		}, nil)
		f.queries.EXPECT().GetByIDSystem(gomock.Any(), orderID).Return(stored, nil)
		f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		res, err := f.useCase(config.CheckoutModeTransaction).PlaceOrder(context.Background(), in)

		require.NoError(t, err)
		assert.True(t, res.IsReplayed)
		assert.Equal(t, stored, res.Order)
	})

	t.Run("same key with a different body is rejected", func(t *testing.T) {
		f := newCheckoutFixture(t)
		in := twoLineInput()
		in.IdempotencyKey = &key

		f.idem.EXPECT().TryInsert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, in.UserID).Return(&shared.IdempotencyRecord{
			Status:      shared.IdempotencyStatusCompleted,
			RequestHash: "something-else",
		}, nil)

		_, err := f.useCase(config.CheckoutModeTransaction).PlaceOrder(context.Background(), in)

		assert.ErrorIs(t, err, errs.ErrIdempotencyKeyReused)
	})

	t.Run("request still processing", func(t *testing.T) {
		f := newCheckoutFixture(t)
		in := twoLineInput()
		in.IdempotencyKey = &key

		f.idem.EXPECT().TryInsert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, in.UserID).Return(&shared.IdempotencyRecord{
			Status:      shared.IdempotencyStatusProcessing,
			RequestHash: calculateRequestHash(in),
		}, nil)

		_, err := f.useCase(config.CheckoutModeTransaction).PlaceOrder(context.Background(), in)

		assert.ErrorIs(t, err, errs.ErrIdempotencyInProgress)
	})

	t.Run("expired key is claimed again", func(t *testing.T) {
		f := newCheckoutFixture(t)
		in := twoLineInput()
		in.IdempotencyKey = &key

		f.idem.EXPECT().TryInsert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, in.UserID).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "idempotency key not found"))
		f.idem.EXPECT().ClaimExpired(gomock.Any(), gomock.Any(), key, in.UserID, calculateRequestHash(in), gomock.Any()).Return(int64(1), nil)
		f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.now, nil)
		f.orders.EXPECT().InsertLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&shared.StockChange{CurrentPriceCents: 10000}, nil).Times(2)
		f.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.idem.EXPECT().UpdateStatusCompleted(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.useCase(config.CheckoutModeTransaction).PlaceOrder(context.Background(), in)

		require.NoError(t, err)
	})

	t.Run("failed placement releases the key", func(t *testing.T) {
		f := newCheckoutFixture(t)
		in := twoLineInput()
		in.IdempotencyKey = &key

		f.idem.EXPECT().TryInsert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.orders.EXPECT().CreateHeader(gomock.Any(), gomock.Any(), gomock.Any()).Return(f.now, nil)
		f.orders.EXPECT().InsertLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.stock.EXPECT().Decrement(gomock.Any(), gomock.Any(), int64(1), int32(2)).
			Return(nil, &inventory.InsufficientStockError{ProductID: 1, Requested: 2, Available: 1})
		f.idem.EXPECT().Release(gomock.Any(), gomock.Any(), key, in.UserID).Return(nil)

		_, err := f.useCase(config.CheckoutModeTransaction).PlaceOrder(context.Background(), in)

		assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
	})
}

func TestCalculateRequestHash(t *testing.T) {
	a := twoLineInput()
	b := twoLineInput()
	b.UserID = uuid.New()

	assert.Equal(t, calculateRequestHash(a), calculateRequestHash(b), "user is not part of the body hash")

	b.Lines[0].Quantity = 3
	assert.NotEqual(t, calculateRequestHash(a), calculateRequestHash(b))
}
