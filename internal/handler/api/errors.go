package api

import (
	"errors"
	"net/http"

	"storefront/internal/domain/inventory"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/httperr"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidID            = errors.New("invalid id")
	errIdempotencyKeyFormat = errors.New("invalid idempotency key format")
)

// abortCheckoutError maps a PlaceOrder failure to its status. Shortages carry
// the product and the quantity still on hand.
func abortCheckoutError(c *gin.Context, err error) {
	var shortage *inventory.InsufficientStockError
	switch {
	case errors.As(err, &shortage):
		httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient stock", resdto.InsufficientStockDetail{
			ProductID: shortage.ProductID,
			Requested: shortage.Requested,
			Available: shortage.Available,
		})
	case errs.Is(err, commands.ErrEmptyCart):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Cart is empty", nil)
	case errs.Is(err, commands.ErrShippingAddressRequired):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Shipping address is required", nil)
	case errs.Is(err, commands.ErrInvalidOrderLine):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order line", nil)
	case errs.Is(err, errs.ErrIdempotencyKeyReused):
		httperr.AbortWithError(c, http.StatusConflict, err, "Idempotency key was used with a different request",
			resdto.ConflictDetail{Reason: resdto.ReasonIdempotencyKeyReused})
	case errs.Is(err, errs.ErrIdempotencyInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "Order request is currently being processed",
			resdto.ConflictDetail{Reason: resdto.ReasonIdempotencyInProgress})
	case errs.Is(err, commands.ErrStoreUnavailable):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Store is temporarily unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create order", nil)
	}
}

func abortOrderCommandError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrOrderNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
	case errs.Is(err, commands.ErrOrderNotPending):
		httperr.AbortWithError(c, http.StatusConflict, err, "Order is no longer pending", nil)
	case errs.Is(err, commands.ErrOrderStatusTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Cancelled orders cannot change status", nil)
	case errs.Is(err, commands.ErrInvalidOrderStatus):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order status", nil)
	case errs.Is(err, commands.ErrInvalidOrderUpdate):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order update", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update order", nil)
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, ErrInvalidID), "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// idempotencyKey reads the optional Idempotency-Key header.
func idempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	raw := c.GetHeader("Idempotency-Key")
	if raw == "" {
		return nil, nil
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return nil, errs.Mark(errIdempotencyKeyFormat, errs.ErrInvalidIdempotencyKey)
	}
	return &key, nil
}
