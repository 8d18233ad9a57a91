//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by the pool and by a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, full_name, role) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		userID, email, "Test "+role, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

type ProductSeed struct {
	Title      string
	PriceCents int64
	Quantity   int32
	Featured   bool
	CreatedAt  time.Time
}

// CreateTestProduct inserts a product and returns its id. Price is given in
// cents and stored as NUMERIC(12,2).
func CreateTestProduct(t *testing.T, db DBLike, p ProductSeed) int64 {
	t.Helper()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	var id int64
	err := db.QueryRow(context.Background(), `
		INSERT INTO products (title, price, quantity, featured, created_at, updated_at)
		VALUES ($1, $2::numeric / 100, $3, $4, $5, $5)
		RETURNING id`,
		p.Title, p.PriceCents, p.Quantity, p.Featured, p.CreatedAt).Scan(&id)
	require.NoError(t, err)
	return id
}

func ProductQuantity(t *testing.T, db DBLike, productID int64) int32 {
	t.Helper()

	var qty int32
	err := db.QueryRow(context.Background(), "SELECT quantity FROM products WHERE id = $1", productID).Scan(&qty)
	require.NoError(t, err)
	return qty
}

func SetProductQuantity(t *testing.T, db DBLike, productID int64, qty int32) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE products SET quantity = $2 WHERE id = $1", productID, qty)
	require.NoError(t, err)
}

func CountOrders(t *testing.T, db DBLike, userID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM orders WHERE user_id = $1", userID).Scan(&n)
	require.NoError(t, err)
	return n
}

// CountOutboxEvents counts events of eventType for one order.
func CountOutboxEvents(t *testing.T, db DBLike, orderID uuid.UUID, eventType string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM outbox_events WHERE aggregate_id = $1 AND event_type = $2", orderID, eventType).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO categories (name) VALUES
		    ('Lighting'),
		    ('Kitchen')
		ON CONFLICT (name) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
