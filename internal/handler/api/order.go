package api

import (
	"net/http"

	reqdto "storefront/internal/handler/dto/request"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/httperr"
	"storefront/internal/handler/middleware"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	checkout commands.CheckoutCommands
	cmds     commands.OrderCommands
	q        queries.OrderQueries
}

func NewOrderHandler(checkout commands.CheckoutCommands, cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{checkout: checkout, cmds: cmds, q: q}
}

// @Summary Place order
// @Description Reserve stock for every cart line and create the order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key for duplicate prevention"
// @Param request body reqdto.PlaceOrderRequest true "Order request"
// @Success 201 {object} resdto.OrderResponse
// @Success 200 {object} resdto.OrderResponse "Replayed idempotent request"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, ErrUnauthorized, "Unauthorized", nil)
		return
	}

	key, err := idempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid Idempotency-Key header", nil)
		return
	}

	var req reqdto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	in, err := req.ToInput(userID, key)
	if err != nil {
		abortCheckoutError(c, err)
		return
	}

	result, err := h.checkout.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		abortCheckoutError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromOrderView(result.Order))
}

// @Summary List my orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 401 {object} httperr.Response
// @Router /orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, ErrUnauthorized, "Unauthorized", nil)
		return
	}
	var q reqdto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	views, page, err := h.q.ListByUser(c.Request.Context(), userID, q.ToPageRequest())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list orders", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.OrderListResponse{Orders: resdto.FromOrderViews(views), PageInfo: page})
}

// @Summary Get order
// @Description Owners see their own orders, admins see any
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, ErrUnauthorized, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id, userID, role)
	if err != nil {
		if errs.Is(err, queries.ErrOrderNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load order", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary Update order
// @Description Change shipping address or delivery time of a pending order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateOrderRequest true "Fields to change"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, ErrUnauthorized, "Unauthorized", nil)
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.cmds.UpdateOrderDetails(c.Request.Context(), id, userID, req.ToInput()); err != nil {
		abortOrderCommandError(c, err)
		return
	}
	h.respondWithOrder(c, id)
}

// @Summary Cancel order
// @Description Cancel a pending order and return its items to stock
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /orders/{id} [delete]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, ErrUnauthorized, "Unauthorized", nil)
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.cmds.CancelOrder(c.Request.Context(), id, userID); err != nil {
		abortOrderCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) respondWithOrder(c *gin.Context, id uuid.UUID) {
	view, err := h.q.GetByIDSystem(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load order", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}
