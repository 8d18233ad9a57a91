package api

import (
	"net/http"
	"strconv"

	reqdto "storefront/internal/handler/dto/request"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/httperr"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	q            queries.ProductQueries
	defaultLimit int
}

func NewProductHandler(q queries.ProductQueries, cfg config.Config) *ProductHandler {
	limit := cfg.Cache.CatalogPageSize
	if limit <= 0 {
		limit = queries.DefaultPageSize
	}
	return &ProductHandler{q: q, defaultLimit: limit}
}

// @Summary List products
// @Description Paginated catalog. The first page at the default size may be served from a snapshot up to five minutes old.
// @Tags products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param featured query bool false "Only featured products"
// @Success 200 {object} resdto.ProductListResponse
// @Failure 400 {object} httperr.Response
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var q reqdto.ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	req, err := q.ToRequest(h.defaultLimit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid pagination", nil)
		return
	}

	page, err := h.q.List(c.Request.Context(), req)
	if err != nil {
		if errs.Is(err, queries.ErrInvalidPage) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid pagination", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list products", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductPage(page))
}

// @Summary Get product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, queries.ErrProductNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load product", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductView(view))
}

func parseProductID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = ErrInvalidID
		}
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, ErrInvalidID), "Invalid product id", nil)
		return 0, false
	}
	return id, true
}
