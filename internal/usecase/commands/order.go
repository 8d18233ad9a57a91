package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"storefront/internal/domain/inventory"
	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound         = errs.New("order not found")
	ErrOrderNotPending       = errs.New("order is no longer pending")
	ErrInvalidOrderStatus    = errs.New("invalid order status")
	ErrInvalidOrderUpdate    = errs.New("invalid order update")
	ErrOrderStatusTransition = errs.New("order status cannot change after cancellation")
)

type UpdateOrderDetailsInput struct {
	ShippingAddress *string
	DeliveryTime    *time.Time
}

type OrderCommands interface {
	// CancelOrder cancels a pending order owned by userID and restocks its lines.
	CancelOrder(ctx context.Context, orderID, userID uuid.UUID) error
	UpdateOrderDetails(ctx context.Context, orderID, userID uuid.UUID, in UpdateOrderDetailsInput) error
	// UpdateOrderStatus is the admin transition. Moving to cancelled restocks.
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) error
}

type orderUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewOrderUseCase(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) OrderCommands {
	return &orderUseCaseImpl{uow: uow, clock: clk, logger: logger}
}

func (uc *orderUseCaseImpl) CancelOrder(ctx context.Context, orderID, userID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ord, err := uc.lockOwned(ctx, tx, orderID, userID)
		if err != nil {
			return err
		}
		if err := ord.Cancel(); err != nil {
			return errs.Mark(err, ErrOrderNotPending)
		}
		if err := tx.Orders().UpdateStatus(ctx, tx.DB(), ord.ID(), ord.Status()); err != nil {
			return err
		}
		if err := uc.restock(ctx, tx, ord); err != nil {
			return err
		}
		return enqueueOrderEvent(ctx, tx, shared.EventOrderCancelled, ord, uc.clock.Now())
	})
}

func (uc *orderUseCaseImpl) UpdateOrderDetails(ctx context.Context, orderID, userID uuid.UUID, in UpdateOrderDetailsInput) error {
	if in.ShippingAddress == nil && in.DeliveryTime == nil {
		return ErrInvalidOrderUpdate
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ord, err := uc.lockOwned(ctx, tx, orderID, userID)
		if err != nil {
			return err
		}
		if err := ord.UpdateDetails(in.ShippingAddress, in.DeliveryTime); err != nil {
			switch {
			case errors.Is(err, order.ErrNotPending):
				return errs.Mark(err, ErrOrderNotPending)
			default:
				return errs.Mark(err, ErrInvalidOrderUpdate)
			}
		}
		return tx.Orders().UpdateDetails(ctx, tx.DB(), ord)
	})
}

func (uc *orderUseCaseImpl) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	next, err := order.ParseStatus(status)
	if err != nil {
		return errs.Mark(err, ErrInvalidOrderStatus)
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ord, err := tx.Reads().OrderForUpdate(ctx, orderID)
		if err != nil {
			return markOrderLookup(err)
		}

		prev := ord.Status()
		if prev == next {
			return nil
		}
		if prev == order.StatusCancelled {
			return ErrOrderStatusTransition
		}
		if err := ord.SetStatus(next); err != nil {
			return errs.Mark(err, ErrInvalidOrderStatus)
		}
		if err := tx.Orders().UpdateStatus(ctx, tx.DB(), ord.ID(), next); err != nil {
			return err
		}

		eventType := shared.EventOrderStatusChanged
		if next == order.StatusCancelled {
			if err := uc.restock(ctx, tx, ord); err != nil {
				return err
			}
			eventType = shared.EventOrderCancelled
		}

		uc.logger.Info("order status changed",
			"order_id", ord.ID().String(),
			"from", prev.String(),
			"to", next.String())
		return enqueueOrderEvent(ctx, tx, eventType, ord, uc.clock.Now())
	})
}

func (uc *orderUseCaseImpl) lockOwned(ctx context.Context, tx shared.Tx, orderID, userID uuid.UUID) (*order.Order, error) {
	ord, err := tx.Reads().OrderForUpdate(ctx, orderID)
	if err != nil {
		return nil, markOrderLookup(err)
	}
	// Someone else's order looks the same as a missing one.
	if err := ord.EnsureOwnedBy(userID); err != nil {
		return nil, errs.Mark(err, ErrOrderNotFound)
	}
	return ord, nil
}

// restock returns every line to the ledger. Products deleted since the order
// was placed are skipped.
func (uc *orderUseCaseImpl) restock(ctx context.Context, tx shared.Tx, ord *order.Order) error {
	for _, line := range ord.Lines() {
		if _, err := tx.Stock().Increment(ctx, tx.DB(), line.ProductID, line.Quantity); err != nil {
			if errs.Is(err, inventory.ErrProductMissing) {
				uc.logger.Warn("skipping restock of removed product",
					"order_id", ord.ID().String(),
					"product_id", line.ProductID)
				continue
			}
			return err
		}
	}
	return nil
}

func markOrderLookup(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrOrderNotFound)
	}
	return err
}
