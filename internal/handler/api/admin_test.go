//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"storefront/internal/domain/order"
	"storefront/internal/domain/product"
	"storefront/internal/domain/user"
	"storefront/internal/handler/api"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/middleware"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"
	"storefront/tests/common/builder"
	"storefront/tests/common/httptest"
	"storefront/tests/common/testutil"
	commandsmock "storefront/tests/mock/commands"
	queriesmock "storefront/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// staticTokens resolves fixed bearer tokens to identities.
type staticTokens map[string]user.Role

func (s staticTokens) ValidateToken(token string) (uuid.UUID, user.Role, error) {
	role, ok := s[token]
	if !ok {
		return uuid.Nil, "", errors.New("unknown token")
	}
	return uuid.New(), role, nil
}

const (
	adminToken    = "admin-token"
	customerToken = "customer-token"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCtrl        *gomock.Controller
	mockOrderCmds   *commandsmock.MockOrderCommands
	mockProductCmds *commandsmock.MockProductCommands
	mockOrders      *queriesmock.MockOrderQueries
	mockUsers       *queriesmock.MockUserQueries
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockOrderCmds = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockProductCmds = commandsmock.NewMockProductCommands(s.mockCtrl)
	s.mockOrders = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.mockUsers = queriesmock.NewMockUserQueries(s.mockCtrl)
	handler := api.NewAdminHandler(s.mockOrderCmds, s.mockProductCmds, s.mockOrders, s.mockUsers)

	auth := middleware.NewAuthMiddleware(staticTokens{adminToken: user.RoleAdmin, customerToken: user.RoleCustomer})
	admin := s.router.Group("/api/admin", auth.RequireAuth(), auth.RequireRole(user.RoleAdmin))
	admin.GET("/orders", handler.ListOrders)
	admin.PUT("/orders/:id/status", handler.UpdateOrderStatus)
	admin.POST("/products", handler.CreateProduct)
	admin.PUT("/products/:id", handler.UpdateProduct)
	admin.DELETE("/products/:id", handler.DeleteProduct)
	admin.GET("/users", handler.ListUsers)
	admin.GET("/users/:id/orders", handler.ListUserOrders)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) TestAccessControl() {
	s.Run("customers are forbidden", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/orders", nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("anonymous requests are rejected", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/orders", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("unknown token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/users", nil, "forged")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *AdminHandlerTestSuite) TestListOrders() {
	s.Run("filters by status", func() {
		s.mockOrders.EXPECT().ListAll(gomock.Any(), gomock.Any(), queries.PageRequest{Page: 1, Limit: queries.DefaultPageSize}).
			DoAndReturn(func(_ any, status *string, _ queries.PageRequest) ([]*queries.OrderView, queries.PageInfo, error) {
				s.Require().NotNil(status)
				s.Equal("shipped", *status)
				return []*queries.OrderView{builder.NewOrderBuilder().WithStatus(order.StatusShipped).BuildView()},
					queries.PageInfo{Page: 1, Limit: queries.DefaultPageSize, Total: 1, TotalPages: 1}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/orders?status=shipped", nil, adminToken)

		var got resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Require().Len(got.Orders, 1)
		s.Equal("shipped", got.Orders[0].Status)
	})

	s.Run("unknown status filter", func() {
		s.mockOrders.EXPECT().ListAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, queries.PageInfo{}, errs.Mark(assert.AnError, queries.ErrInvalidOrderFilter))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/orders?status=lost", nil, adminToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid status filter")
	})
}

func (s *AdminHandlerTestSuite) TestUpdateOrderStatus() {
	view := builder.NewOrderBuilder().WithStatus(order.StatusShipped).BuildView()
	url := "/api/admin/orders/" + view.ID.String() + "/status"

	s.Run("success returns the updated order", func() {
		s.mockOrderCmds.EXPECT().UpdateOrderStatus(gomock.Any(), view.ID, "shipped").Return(nil)
		s.mockOrders.EXPECT().GetByIDSystem(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"status": "shipped"}, adminToken)

		var got resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal("shipped", got.Status)
	})

	s.Run("missing status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{}, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	errorCases := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{name: "invalid status", err: commands.ErrInvalidOrderStatus, expectCode: http.StatusBadRequest, expectMsg: "Invalid order status"},
		{name: "cancelled order", err: commands.ErrOrderStatusTransition, expectCode: http.StatusConflict, expectMsg: "cannot change status"},
		{name: "unknown order", err: commands.ErrOrderNotFound, expectCode: http.StatusNotFound, expectMsg: "Order not found"},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.mockOrderCmds.EXPECT().UpdateOrderStatus(gomock.Any(), view.ID, gomock.Any()).Return(tc.err)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"status": "delivered"}, adminToken)
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}
}

func (s *AdminHandlerTestSuite) TestCreateProduct() {
	b := builder.NewProductBuilder()

	s.Run("success", func() {
		s.mockProductCmds.EXPECT().CreateProduct(gomock.Any(), commands.CreateProductInput{
			Title:       b.Title,
			Description: b.Description,
			PriceCents:  10000,
			Quantity:    5,
		}).Return(&commands.CreateProductResult{ProductID: 42}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/products", b.BuildCreateRequestDTO(), adminToken)

		var got resdto.CreateProductResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &got)
		s.Equal(int64(42), got.ID)
	})

	validationCases := []struct {
		name string
		body map[string]any
	}{
		{name: "missing title", body: testutil.DtoMap(s.T(), b.BuildCreateRequestDTO(), testutil.Field("title", nil))},
		{name: "negative price", body: testutil.DtoMap(s.T(), b.BuildCreateRequestDTO(), testutil.Field("price", -1))},
		{name: "negative quantity", body: testutil.DtoMap(s.T(), b.BuildCreateRequestDTO(), testutil.Field("quantity", -2))},
	}
	for _, tc := range validationCases {
		s.Run(tc.name, func() {
			s.mockProductCmds.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Times(0)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/products", tc.body, adminToken)
			s.Equal(http.StatusBadRequest, rec.Code)
		})
	}
}

func (s *AdminHandlerTestSuite) TestUpdateProduct() {
	s.Run("partial update converts price to cents", func() {
		s.mockProductCmds.EXPECT().UpdateProduct(gomock.Any(), int64(3), gomock.Any()).
			DoAndReturn(func(_ any, _ int64, upd product.Update) error {
				s.Require().NotNil(upd.PriceCents)
				s.Equal(int64(1999), *upd.PriceCents)
				s.Nil(upd.Title)
				return nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/admin/products/3", map[string]any{"price": 19.99}, adminToken)

		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("empty body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/admin/products/3", map[string]any{}, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid product update")
	})

	s.Run("unknown product", func() {
		s.mockProductCmds.EXPECT().UpdateProduct(gomock.Any(), int64(3), gomock.Any()).Return(commands.ErrProductNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/admin/products/3", map[string]any{"quantity": 4}, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Product not found")
	})
}

func (s *AdminHandlerTestSuite) TestDeleteProduct() {
	s.Run("success", func() {
		s.mockProductCmds.EXPECT().DeleteProduct(gomock.Any(), int64(5)).Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/admin/products/5", nil, adminToken)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("referenced by orders", func() {
		s.mockProductCmds.EXPECT().DeleteProduct(gomock.Any(), int64(5)).Return(errs.Mark(assert.AnError, commands.ErrProductReferenced))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/admin/products/5", nil, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "referenced by orders")
	})
}

func (s *AdminHandlerTestSuite) TestListUsers() {
	views := []*queries.UserView{
		builder.NewUserBuilder().BuildView(),
		builder.NewUserBuilder().WithEmail("ops@example.com").AsAdmin().BuildView(),
	}
	s.mockUsers.EXPECT().List(gomock.Any(), queries.PageRequest{Page: 1, Limit: queries.DefaultPageSize}).
		Return(views, queries.PageInfo{Page: 1, Limit: queries.DefaultPageSize, Total: 2, TotalPages: 1}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/users", nil, adminToken)

	var got resdto.UserListResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
	s.Require().Len(got.Users, 2)
	s.Equal("admin", got.Users[1].Role)
	s.Equal(views[0].ID.String(), got.Users[0].ID)
}

func (s *AdminHandlerTestSuite) TestListUserOrders() {
	u := builder.NewUserBuilder().BuildView()
	url := "/api/admin/users/" + u.ID.String() + "/orders"

	s.Run("success", func() {
		s.mockUsers.EXPECT().GetByID(gomock.Any(), u.ID).Return(u, nil)
		s.mockOrders.EXPECT().ListByUser(gomock.Any(), u.ID, gomock.Any()).
			Return([]*queries.OrderView{}, queries.PageInfo{Page: 1, Limit: queries.DefaultPageSize}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, adminToken)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("unknown user", func() {
		s.mockUsers.EXPECT().GetByID(gomock.Any(), u.ID).Return(nil, queries.ErrUserNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, adminToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User not found")
	})
}
