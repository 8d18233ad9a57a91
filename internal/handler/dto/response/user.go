package response

import (
	"storefront/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID        string `json:"id" copier:"-"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"created_at" copier:"-"`
}

func FromUserView(v *queries.UserView) *UserResponse {
	res := &UserResponse{}
	_ = copier.Copy(res, v)
	res.ID = v.ID.String()
	res.CreatedAt = v.CreatedAt.Unix()
	return res
}

type UserListResponse struct {
	Users []*UserResponse `json:"users"`
	queries.PageInfo
}

func FromUserViews(vs []*queries.UserView, page queries.PageInfo) *UserListResponse {
	users := make([]*UserResponse, len(vs))
	for i, v := range vs {
		users[i] = FromUserView(v)
	}
	return &UserListResponse{Users: users, PageInfo: page}
}
