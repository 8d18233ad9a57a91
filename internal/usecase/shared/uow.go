package shared

import (
	"context"
	"time"

	"storefront/internal/domain/order"
	"storefront/internal/domain/product"
	sqlc "storefront/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// Direct: repositories bound to the pool; every statement commits on its own
	Direct() Tx
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Stock() StockLedger
	Orders() OrderRepository
	Products() ProductRepository
	Idempotency() IdempotencyRepository
	Outbox() OutboxRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

type CommandReads interface {
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	OrderForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ProductByID(ctx context.Context, id int64) (*product.Product, error)
}

// StockLedger is the authoritative per-product quantity store.
type StockLedger interface {
	// Decrement subtracts amount only if at least amount units remain.
	Decrement(ctx context.Context, db sqlc.DBTX, productID int64, amount int32) (*StockChange, error)
	Increment(ctx context.Context, db sqlc.DBTX, productID int64, amount int32) (int32, error)
	Read(ctx context.Context, db sqlc.DBTX, productID int64) (int32, error)
}

type OrderRepository interface {
	CreateHeader(ctx context.Context, db sqlc.DBTX, o *order.Order) (time.Time, error)
	InsertLines(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID, lines []order.Line) error
	DeleteHeader(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) error
	UpdateStatus(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID, status order.Status) error
	UpdateDetails(ctx context.Context, db sqlc.DBTX, o *order.Order) error
}

type ProductRepository interface {
	Create(ctx context.Context, db sqlc.DBTX, p *product.Product) (int64, error)
	Update(ctx context.Context, db sqlc.DBTX, p *product.Product) error
	Delete(ctx context.Context, db sqlc.DBTX, id int64) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, db sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, db sqlc.DBTX, key, userID uuid.UUID, resultHash string, orderID uuid.UUID) error
	ClaimExpired(ctx context.Context, db sqlc.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error)
	Release(ctx context.Context, db sqlc.DBTX, key, userID uuid.UUID) error
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, db sqlc.DBTX, event OutboxEvent) error
	FetchPending(ctx context.Context, db sqlc.DBTX, limit int32) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, db sqlc.DBTX, id uuid.UUID) error
	MarkFailed(ctx context.Context, db sqlc.DBTX, id uuid.UUID, cause string, maxAttempts int32) error
}
