package queries

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUserNotFound = errs.New("user not found")

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	List(ctx context.Context, limit, offset int32) ([]*UserView, int64, error)
}

type UserQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	List(ctx context.Context, page PageRequest) ([]*UserView, PageInfo, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{
		readStore: readStore,
	}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*UserView, error) {
	u, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (q *userQueriesImpl) List(ctx context.Context, page PageRequest) ([]*UserView, PageInfo, error) {
	page = page.Normalize()
	users, total, err := q.readStore.List(ctx, int32(page.Limit), page.Offset()) // #nosec G115 -- limit is clamped
	if err != nil {
		return nil, PageInfo{}, err
	}
	return users, page.Info(total), nil
}
