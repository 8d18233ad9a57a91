package api

import (
	"net/http"

	reqdto "storefront/internal/handler/dto/request"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/httperr"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the /admin routes. Role checks happen in middleware.
type AdminHandler struct {
	orderCmds   commands.OrderCommands
	productCmds commands.ProductCommands
	orders      queries.OrderQueries
	users       queries.UserQueries
}

func NewAdminHandler(
	orderCmds commands.OrderCommands,
	productCmds commands.ProductCommands,
	orders queries.OrderQueries,
	users queries.UserQueries,
) *AdminHandler {
	return &AdminHandler{orderCmds: orderCmds, productCmds: productCmds, orders: orders, users: users}
}

type adminOrderListQuery struct {
	reqdto.ListQuery
	Status *string `form:"status"`
}

// @Summary List all orders
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/orders [get]
func (h *AdminHandler) ListOrders(c *gin.Context) {
	var q adminOrderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	views, page, err := h.orders.ListAll(c.Request.Context(), q.Status, q.ToPageRequest())
	if err != nil {
		if errs.Is(err, queries.ErrInvalidOrderFilter) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status filter", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list orders", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.OrderListResponse{Orders: resdto.FromOrderViews(views), PageInfo: page})
}

// @Summary Update order status
// @Description Cancelling an order returns its items to stock
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/orders/{id}/status [put]
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.orderCmds.UpdateOrderStatus(c.Request.Context(), id, req.Status); err != nil {
		abortOrderCommandError(c, err)
		return
	}

	view, err := h.orders.GetByIDSystem(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load order", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary Create product
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateProductRequest true "Product"
// @Success 201 {object} resdto.CreateProductResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/products [post]
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req reqdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid price", nil)
		return
	}

	res, err := h.productCmds.CreateProduct(c.Request.Context(), in)
	if err != nil {
		abortProductCommandError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreateProductResponse{ID: res.ProductID})
}

// @Summary Update product
// @Description Partial update. Cached listings keep the previous data until the snapshot expires.
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body reqdto.UpdateProductRequest true "Fields to change"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/products/{id} [put]
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	upd, err := req.ToUpdate()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product update", nil)
		return
	}

	if err := h.productCmds.UpdateProduct(c.Request.Context(), id, upd); err != nil {
		abortProductCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete product
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}
	if err := h.productCmds.DeleteProduct(c.Request.Context(), id); err != nil {
		abortProductCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.UserListResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var q reqdto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	views, page, err := h.users.List(c.Request.Context(), q.ToPageRequest())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list users", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUserViews(views, page))
}

// @Summary List a user's orders
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/users/{id}/orders [get]
func (h *AdminHandler) ListUserOrders(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var q reqdto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	if _, err := h.users.GetByID(c.Request.Context(), userID); err != nil {
		if errs.Is(err, queries.ErrUserNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load user", nil)
		return
	}

	views, page, err := h.orders.ListByUser(c.Request.Context(), userID, q.ToPageRequest())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list orders", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.OrderListResponse{Orders: resdto.FromOrderViews(views), PageInfo: page})
}

func abortProductCommandError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrProductNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
	case errs.Is(err, commands.ErrProductReferenced):
		httperr.AbortWithError(c, http.StatusConflict, err, "Product is referenced by orders", nil)
	case errs.Is(err, commands.ErrInvalidProduct):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to write product", nil)
	}
}
