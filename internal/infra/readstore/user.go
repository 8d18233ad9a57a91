package readstore

import (
	"context"

	"storefront/internal/infra"
	sqlc "storefront/internal/infra/sqlc/generated"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	GetUserByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Users, error)
	ListUsers(ctx context.Context, db sqlc.DBTX, arg sqlc.ListUsersParams) ([]sqlc.Users, error)
	CountUsers(ctx context.Context, db sqlc.DBTX) (int64, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      sqlc.DBTX
}

func NewUserReadStore(queries UserReadQueries, db sqlc.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	row, err := r.queries.GetUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return toUserView(row), nil
}

func (r *UserReadStore) List(ctx context.Context, limit, offset int32) ([]*queries.UserView, int64, error) {
	rows, err := r.queries.ListUsers(ctx, r.db, sqlc.ListUsersParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list users", err)
	}
	total, err := r.queries.CountUsers(ctx, r.db)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count users", err)
	}

	views := make([]*queries.UserView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toUserView(row))
	}
	return views, total, nil
}

func toUserView(row sqlc.Users) *queries.UserView {
	return &queries.UserView{
		ID:        row.ID,
		Email:     row.Email,
		FullName:  row.FullName,
		Role:      row.Role,
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
