package queries

import (
	"context"

	"storefront/internal/domain/order"
	"storefront/internal/domain/user"
	"storefront/internal/infra"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound      = errs.New("order not found")
	ErrInvalidOrderFilter = errs.New("invalid order status filter")
)

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*OrderView, int64, error)
	ListAll(ctx context.Context, status *string, limit, offset int32) ([]*OrderView, int64, error)
}

type OrderQueries interface {
	// GetByID returns the order when the actor owns it or is an admin.
	GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole user.Role) (*OrderView, error)
	// GetByIDSystem skips the ownership check (idempotent replays).
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page PageRequest) ([]*OrderView, PageInfo, error)
	ListAll(ctx context.Context, status *string, page PageRequest) ([]*OrderView, PageInfo, error)
}

type orderQueriesImpl struct {
	readStore OrderReadStore
}

func NewOrderQueries(readStore OrderReadStore) OrderQueries {
	return &orderQueriesImpl{readStore: readStore}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole user.Role) (*OrderView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	// Other users' orders are reported as missing.
	if !actorRole.IsAdmin() && view.UserID != actorID {
		return nil, ErrOrderNotFound
	}
	return view, nil
}

func (q *orderQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *orderQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, page PageRequest) ([]*OrderView, PageInfo, error) {
	page = page.Normalize()
	views, total, err := q.readStore.ListByUser(ctx, userID, int32(page.Limit), page.Offset()) // #nosec G115 -- limit is clamped
	if err != nil {
		return nil, PageInfo{}, err
	}
	return views, page.Info(total), nil
}

func (q *orderQueriesImpl) ListAll(ctx context.Context, status *string, page PageRequest) ([]*OrderView, PageInfo, error) {
	if status != nil && *status != "" {
		if _, err := order.ParseStatus(*status); err != nil {
			return nil, PageInfo{}, errs.Mark(err, ErrInvalidOrderFilter)
		}
	} else {
		status = nil
	}

	page = page.Normalize()
	views, total, err := q.readStore.ListAll(ctx, status, int32(page.Limit), page.Offset()) // #nosec G115 -- limit is clamped
	if err != nil {
		return nil, PageInfo{}, err
	}
	return views, page.Info(total), nil
}
