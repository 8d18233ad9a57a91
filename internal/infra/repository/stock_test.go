//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain/inventory"
	"storefront/internal/infra"
	"storefront/internal/infra/repository"
	sqlc "storefront/internal/infra/sqlc/generated"
	"storefront/internal/pkg/pgconv"
	repositorymock "storefront/tests/mock/repository"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStockLedger_Decrement(t *testing.T) {
	tests := []struct {
		name        string
		amount      int32
		setup       func(q *repositorymock.MockStockQueries)
		wantChange  bool
		wantShort   *inventory.InsufficientStockError
		wantMissing bool
		wantErr     error
	}{
		{
			name:   "enough stock",
			amount: 2,
			setup: func(q *repositorymock.MockStockQueries) {
				q.EXPECT().DecrementStock(gomock.Any(), gomock.Any(), sqlc.DecrementStockParams{Amount: 2, ID: 1}).
					Return(sqlc.DecrementStockRow{Quantity: 3, Price: pgconv.CentsToNumeric(10000)}, nil)
			},
			wantChange: true,
		},
		{
			name:   "too few units reports what is left",
			amount: 5,
			setup: func(q *repositorymock.MockStockQueries) {
				q.EXPECT().DecrementStock(gomock.Any(), gomock.Any(), gomock.Any()).Return(sqlc.DecrementStockRow{}, pgx.ErrNoRows)
				q.EXPECT().GetStock(gomock.Any(), gomock.Any(), int64(1)).Return(int32(2), nil)
			},
			wantShort: &inventory.InsufficientStockError{ProductID: 1, Requested: 5, Available: 2},
		},
		{
			name:   "product gone",
			amount: 1,
			setup: func(q *repositorymock.MockStockQueries) {
				q.EXPECT().DecrementStock(gomock.Any(), gomock.Any(), gomock.Any()).Return(sqlc.DecrementStockRow{}, pgx.ErrNoRows)
				q.EXPECT().GetStock(gomock.Any(), gomock.Any(), int64(1)).Return(int32(0), pgx.ErrNoRows)
			},
			wantMissing: true,
		},
		{
			name:    "zero amount is rejected before the query",
			amount:  0,
			setup:   func(q *repositorymock.MockStockQueries) {},
			wantErr: inventory.ErrInvalidAmount,
		},
		{
			name:   "database error",
			amount: 1,
			setup: func(q *repositorymock.MockStockQueries) {
				q.EXPECT().DecrementStock(gomock.Any(), gomock.Any(), gomock.Any()).Return(sqlc.DecrementStockRow{}, assert.AnError)
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			q := repositorymock.NewMockStockQueries(ctrl)
			tt.setup(q)
			ledger := repository.NewStockLedger(q)

			change, err := ledger.Decrement(context.Background(), nil, 1, tt.amount)

			switch {
			case tt.wantChange:
				require.NoError(t, err)
				assert.Equal(t, int32(3), change.Remaining)
				assert.Equal(t, int64(10000), change.CurrentPriceCents)
			case tt.wantShort != nil:
				var short *inventory.InsufficientStockError
				require.True(t, errors.As(err, &short))
				assert.Equal(t, tt.wantShort, short)
				assert.True(t, infra.IsKind(err, infra.KindConflict))
			case tt.wantMissing:
				assert.ErrorIs(t, err, inventory.ErrProductMissing)
				assert.True(t, infra.IsKind(err, infra.KindNotFound))
			default:
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestStockLedger_Increment(t *testing.T) {
	t.Run("adds units", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockStockQueries(ctrl)
		q.EXPECT().IncrementStock(gomock.Any(), gomock.Any(), sqlc.IncrementStockParams{Amount: 4, ID: 9}).Return(int32(6), nil)

		remaining, err := repository.NewStockLedger(q).Increment(context.Background(), nil, 9, 4)

		require.NoError(t, err)
		assert.Equal(t, int32(6), remaining)
	})

	t.Run("missing product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockStockQueries(ctrl)
		q.EXPECT().IncrementStock(gomock.Any(), gomock.Any(), gomock.Any()).Return(int32(0), pgx.ErrNoRows)

		_, err := repository.NewStockLedger(q).Increment(context.Background(), nil, 9, 1)

		assert.ErrorIs(t, err, inventory.ErrProductMissing)
	})
}

func TestStockLedger_Read(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := repositorymock.NewMockStockQueries(ctrl)
	q.EXPECT().GetStock(gomock.Any(), gomock.Any(), int64(2)).Return(int32(11), nil)

	qty, err := repository.NewStockLedger(q).Read(context.Background(), nil, 2)

	require.NoError(t, err)
	assert.Equal(t, int32(11), qty)
}
