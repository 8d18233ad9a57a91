//go:build unit

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain/inventory"
	"storefront/internal/domain/order"
	"storefront/internal/domain/product"
	"storefront/internal/infra"
	sqlc "storefront/internal/infra/sqlc/generated"
	"storefront/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderWriteQueries struct {
	mock.Mock
}

func (m *MockOrderWriteQueries) CreateOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderParams) (sqlc.Orders, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlc.Orders), args.Error(1)
}

func (m *MockOrderWriteQueries) InsertOrderItem(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOrderItemParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockOrderWriteQueries) DeleteOrder(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderWriteQueries) UpdateOrderStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOrderStatusParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderWriteQueries) UpdateOrderDetails(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOrderDetailsParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

// sqlc.DBTX implementation for MockOrderWriteQueries
func (m *MockOrderWriteQueries) Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockOrderWriteQueries) Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Rows), mockArgs.Error(1)
}

func (m *MockOrderWriteQueries) QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	lines := []order.Line{
		{ProductID: 1, Quantity: 2, UnitPrice: product.MustMoney(10000)},
		{ProductID: 5, Quantity: 1, UnitPrice: product.MustMoney(999)},
	}
	o, err := order.NewOrder(uuid.New(), lines, "1 Main St", order.PaymentMethodCard)
	require.NoError(t, err)
	return o
}

func TestCreateHeader(t *testing.T) {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		mockError error
		wantError bool
	}{
		{name: "success", mockError: nil, wantError: false},
		{name: "database error", mockError: assert.AnError, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrder(t)
			mockQueries := new(MockOrderWriteQueries)
			mockQueries.On("CreateOrder", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CreateOrderParams) bool {
				cents, err := pgconv.CentsFromNumeric(p.TotalAmount)
				return err == nil && p.ID == o.ID() && cents == 20999 && p.Status == "pending"
			})).Return(sqlc.Orders{CreatedAt: pgconv.TimeToPgtype(createdAt)}, tt.mockError)

			repo := NewOrderRepository(mockQueries)

			got, err := repo.CreateHeader(context.Background(), mockQueries, o)

			if tt.wantError {
				assert.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
			} else {
				assert.NoError(t, err)
				assert.True(t, got.Equal(createdAt))
			}

			mockQueries.AssertExpectations(t)
		})
	}
}

func TestInsertLines(t *testing.T) {
	o := newTestOrder(t)
	mockQueries := new(MockOrderWriteQueries)
	for i, l := range o.Lines() {
		mockQueries.On("InsertOrderItem", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.InsertOrderItemParams) bool {
			return p.OrderID == o.ID() && p.ProductID == l.ProductID && p.Quantity == l.Quantity && p.Position == int32(i)
		})).Return(nil).Once()
	}

	err := NewOrderRepository(mockQueries).InsertLines(context.Background(), mockQueries, o.ID(), o.Lines())

	assert.NoError(t, err)
	mockQueries.AssertExpectations(t)
}

func TestInsertLines_ForeignKeyViolations(t *testing.T) {
	tests := []struct {
		name        string
		constraint  string
		wantMissing bool
		wantKind    infra.RepositoryErrorKind
	}{
		{name: "deleted product", constraint: "order_items_product_id_fkey", wantMissing: true, wantKind: infra.KindNotFound},
		{name: "unnamed constraint", constraint: "", wantMissing: true, wantKind: infra.KindNotFound},
		{name: "order header gone", constraint: orderItemsOrderFK, wantKind: infra.KindForeignKeyViolated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrder(t)
			mockQueries := new(MockOrderWriteQueries)
			mockQueries.On("InsertOrderItem", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.InsertOrderItemParams) bool {
				return p.ProductID == 1
			})).Return(nil).Once()
			mockQueries.On("InsertOrderItem", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.InsertOrderItemParams) bool {
				return p.ProductID == 5
			})).Return(&pgconn.PgError{Code: "23503", ConstraintName: tt.constraint}).Once()

			err := NewOrderRepository(mockQueries).InsertLines(context.Background(), mockQueries, o.ID(), o.Lines())

			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			var missing *inventory.ProductMissingError
			if tt.wantMissing {
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, int64(5), missing.ProductID)
				assert.ErrorIs(t, err, inventory.ErrProductMissing)
			} else {
				assert.False(t, errors.As(err, &missing))
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestDeleteHeader(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "deleted", affected: 1},
		{name: "already gone", affected: 0, wantKind: infra.KindNotFound},
		{name: "database error", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.New()
			mockQueries := new(MockOrderWriteQueries)
			mockQueries.On("DeleteOrder", mock.Anything, mock.Anything, id).Return(tt.affected, tt.mockErr)

			err := NewOrderRepository(mockQueries).DeleteHeader(context.Background(), mockQueries, id)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	id := uuid.New()
	mockQueries := new(MockOrderWriteQueries)
	mockQueries.On("UpdateOrderStatus", mock.Anything, mock.Anything,
		sqlc.UpdateOrderStatusParams{ID: id, Status: "shipped"}).Return(int64(0), nil)

	err := NewOrderRepository(mockQueries).UpdateStatus(context.Background(), mockQueries, id, order.StatusShipped)

	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	mockQueries.AssertExpectations(t)
}
