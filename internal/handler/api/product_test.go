//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"storefront/internal/handler/api"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/queries"
	"storefront/tests/common/builder"
	"storefront/tests/common/httptest"
	queriesmock "storefront/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ProductHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockProductQueries
}

func (s *ProductHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockProductQueries(s.mockCtrl)
	handler := api.NewProductHandler(s.mockQueries, config.NewTestConfig())

	products := s.router.Group("/api/products")
	products.GET("", handler.ListProducts)
	products.GET("/:id", handler.GetProduct)
}

func (s *ProductHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestProductHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProductHandlerTestSuite))
}

func (s *ProductHandlerTestSuite) TestListProducts() {
	s.Run("defaults to the first page at the catalog size", func() {
		views := []queries.ProductView{builder.NewProductBuilder().BuildView()}
		s.mockQueries.EXPECT().List(gomock.Any(), queries.ProductListRequest{Page: queries.PageRequest{Page: 1, Limit: 20}}).
			Return(&queries.ProductPage{
				Products: views,
				PageInfo: queries.PageInfo{Page: 1, Limit: 20, Total: 1, TotalPages: 1},
				Cached:   true,
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/products", nil, "")

		var got resdto.ProductListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.True(got.Cached)
		s.Equal(int64(1), got.Total)
		s.Require().Len(got.Products, 1)
		s.Equal("Desk Lamp", got.Products[0].Title)
		s.InDelta(100.0, got.Products[0].Price, 0.0001)
	})

	s.Run("passes page, limit and featured through", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.ProductListRequest{Featured: true, Page: queries.PageRequest{Page: 3, Limit: 5}}).
			Return(&queries.ProductPage{PageInfo: queries.PageInfo{Page: 3, Limit: 5}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/products?page=3&limit=5&featured=true", nil, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	invalid := []struct {
		name  string
		query string
	}{
		{name: "page zero", query: "?page=0"},
		{name: "negative limit", query: "?limit=-1"},
		{name: "non-numeric page", query: "?page=abc"},
	}
	for _, tc := range invalid {
		s.Run("rejects "+tc.name, func() {
			s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/products"+tc.query, nil, "")
			s.Equal(http.StatusBadRequest, rec.Code)
		})
	}

	s.Run("page beyond range from the query layer", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, queries.ErrInvalidPage)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/products?page=2", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid pagination")
	})

	s.Run("storage failure", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/products", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to list products")
	})
}

func (s *ProductHandlerTestSuite) TestGetProduct() {
	s.Run("success", func() {
		view := builder.NewProductBuilder().With(func(p *builder.ProductBuilder) { p.ID = 7 }).BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/products/7", nil, "")

		var got resdto.ProductResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(int64(7), got.ID)
		s.Equal(int32(5), got.Quantity)
	})

	s.Run("not found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, errs.Mark(assert.AnError, queries.ErrProductNotFound))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/products/99", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Product not found")
	})

	for _, raw := range []string{"abc", "0", "-3"} {
		s.Run("invalid id "+raw, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/products/"+raw, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid product id")
		})
	}
}
