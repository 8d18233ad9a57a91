package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"storefront/internal/domain/inventory"
	"storefront/internal/domain/order"
	"storefront/internal/domain/product"
	"storefront/internal/infra"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/queries"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart               = errs.New("cart is empty")
	ErrInvalidOrderLine        = errs.New("invalid order line")
	ErrShippingAddressRequired = errs.New("shipping address is required")
	ErrOrderCreateFailed       = errs.New("order creation failed")
	ErrStoreUnavailable        = errs.New("store unavailable")
	ErrCompensationFailed      = errs.New("order compensation failed")
)

const placeOrderEndpoint = "POST /orders"

type OrderLineInput struct {
	ProductID  int64
	Quantity   int32
	PriceCents int64
}

type PlaceOrderInput struct {
	UserID          uuid.UUID
	Lines           []OrderLineInput
	ShippingAddress string
	PaymentMethod   string
	IdempotencyKey  *uuid.UUID
}

type PlaceOrderResult struct {
	Order      *queries.OrderView
	IsReplayed bool
}

type CheckoutCommands interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error)
}

type CheckoutOptions struct {
	Mode           config.CheckoutMode
	IdempotencyTTL time.Duration
}

type checkoutUseCaseImpl struct {
	uow          shared.UnitOfWork
	orderQueries queries.OrderQueries
	clock        clock.Clock
	logger       *slog.Logger
	opts         CheckoutOptions
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	orderQueries queries.OrderQueries,
	clk clock.Clock,
	logger *slog.Logger,
	opts CheckoutOptions,
) CheckoutCommands {
	if opts.Mode == "" {
		opts.Mode = config.CheckoutModeTransaction
	}
	if opts.IdempotencyTTL <= 0 {
		opts.IdempotencyTTL = 24 * time.Hour
	}
	return &checkoutUseCaseImpl{
		uow:          uow,
		orderQueries: orderQueries,
		clock:        clk,
		logger:       logger,
		opts:         opts,
	}
}

func (uc *checkoutUseCaseImpl) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error) {
	ord, err := newOrderFromInput(in)
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != nil {
		replayed, err := uc.handleIdempotency(ctx, *in.IdempotencyKey, in.UserID, calculateRequestHash(in))
		if err != nil {
			return nil, err
		}
		if replayed != nil {
			return &PlaceOrderResult{Order: replayed, IsReplayed: true}, nil
		}
	}

	var createdAt time.Time
	if uc.opts.Mode == config.CheckoutModeSaga {
		createdAt, err = uc.placeWithCompensation(ctx, ord, in.IdempotencyKey)
	} else {
		createdAt, err = uc.placeInTransaction(ctx, ord, in.IdempotencyKey)
	}
	if err != nil {
		if in.IdempotencyKey != nil {
			uc.releaseKey(ctx, *in.IdempotencyKey, in.UserID)
		}
		return nil, err
	}

	uc.logger.Info("order placed",
		"order_id", ord.ID().String(),
		"user_id", ord.UserID().String(),
		"lines", len(ord.Lines()),
		"total_cents", ord.Total().Cents(),
		"mode", string(uc.opts.Mode))

	return &PlaceOrderResult{Order: orderViewFromEntity(ord, createdAt)}, nil
}

// placeInTransaction writes header, lines, stock decrements, the outbox event
// and the idempotency result in one unit of work. Any failure leaves nothing behind.
func (uc *checkoutUseCaseImpl) placeInTransaction(ctx context.Context, ord *order.Order, key *uuid.UUID) (time.Time, error) {
	var createdAt time.Time
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		createdAt, err = tx.Orders().CreateHeader(ctx, tx.DB(), ord)
		if err != nil {
			return err
		}
		if err := tx.Orders().InsertLines(ctx, tx.DB(), ord.ID(), ord.Lines()); err != nil {
			return linesFailure(ord.Lines(), err)
		}
		for _, line := range ord.Lines() {
			change, err := tx.Stock().Decrement(ctx, tx.DB(), line.ProductID, line.Quantity)
			if err != nil {
				return stockFailure(line, err)
			}
			uc.notePriceDrift(ord.ID(), line, change)
		}
		if err := enqueueOrderEvent(ctx, tx, shared.EventOrderCreated, ord, createdAt); err != nil {
			return err
		}
		if key != nil {
			return tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), *key, ord.UserID(), calculateIDHash(ord.ID()), ord.ID())
		}
		return nil
	})
	if err != nil {
		return time.Time{}, classifyCheckoutFailure(err)
	}
	return createdAt, nil
}

// placeWithCompensation runs every step as its own statement. On failure the
// already decremented lines are restocked in submission order and the header
// is deleted; its lines go with it through the cascade.
func (uc *checkoutUseCaseImpl) placeWithCompensation(ctx context.Context, ord *order.Order, key *uuid.UUID) (time.Time, error) {
	direct := uc.uow.Direct()

	createdAt, err := direct.Orders().CreateHeader(ctx, direct.DB(), ord)
	if err != nil {
		return time.Time{}, classifyCheckoutFailure(err)
	}

	if err := direct.Orders().InsertLines(ctx, direct.DB(), ord.ID(), ord.Lines()); err != nil {
		return time.Time{}, uc.compensate(ctx, direct, ord, nil, linesFailure(ord.Lines(), err))
	}

	decremented := make([]order.Line, 0, len(ord.Lines()))
	for _, line := range ord.Lines() {
		change, err := direct.Stock().Decrement(ctx, direct.DB(), line.ProductID, line.Quantity)
		if err != nil {
			return time.Time{}, uc.compensate(ctx, direct, ord, decremented, stockFailure(line, err))
		}
		decremented = append(decremented, line)
		uc.notePriceDrift(ord.ID(), line, change)
	}

	if err := enqueueOrderEvent(ctx, direct, shared.EventOrderCreated, ord, createdAt); err != nil {
		return time.Time{}, uc.compensate(ctx, direct, ord, decremented, err)
	}
	if key != nil {
		err := direct.Idempotency().UpdateStatusCompleted(ctx, direct.DB(), *key, ord.UserID(), calculateIDHash(ord.ID()), ord.ID())
		if err != nil {
			return time.Time{}, uc.compensate(ctx, direct, ord, decremented, err)
		}
	}
	return createdAt, nil
}

// compensate undoes a partially placed order and returns the error the caller
// should see. It keeps going after individual failures so that as much stock
// as possible is returned.
func (uc *checkoutUseCaseImpl) compensate(ctx context.Context, tx shared.Tx, ord *order.Order, decremented []order.Line, cause error) error {
	ctx = context.WithoutCancel(ctx)

	var failures []error
	for _, line := range decremented {
		if _, err := tx.Stock().Increment(ctx, tx.DB(), line.ProductID, line.Quantity); err != nil {
			if errs.Is(err, inventory.ErrProductMissing) {
				uc.logger.Warn("product removed before restock",
					"order_id", ord.ID().String(),
					"product_id", line.ProductID,
					"quantity", line.Quantity)
				continue
			}
			failures = append(failures, err)
		}
	}

	if err := tx.Orders().DeleteHeader(ctx, tx.DB(), ord.ID()); err != nil && !infra.IsKind(err, infra.KindNotFound) {
		failures = append(failures, err)
	}

	if len(failures) > 0 {
		joined := errors.Join(failures...)
		uc.logger.Error("order compensation failed",
			"order_id", ord.ID().String(),
			"user_id", ord.UserID().String(),
			"decremented", lineAttrs(decremented),
			"cause", cause.Error(),
			"error", joined.Error())
		return errs.Mark(errs.Wrap(joined, "compensation failed"), ErrCompensationFailed)
	}

	uc.logger.Info("order compensated",
		"order_id", ord.ID().String(),
		"restocked_lines", len(decremented),
		"cause", cause.Error())
	return classifyCheckoutFailure(cause)
}

// notePriceDrift records orders whose client price no longer matches the
// catalog. The client price is kept.
func (uc *checkoutUseCaseImpl) notePriceDrift(orderID uuid.UUID, line order.Line, change *shared.StockChange) {
	if change == nil || change.CurrentPriceCents == line.UnitPrice.Cents() {
		return
	}
	uc.logger.Warn("order line price differs from catalog price",
		"order_id", orderID.String(),
		"product_id", line.ProductID,
		"line_price_cents", line.UnitPrice.Cents(),
		"catalog_price_cents", change.CurrentPriceCents)
}

func (uc *checkoutUseCaseImpl) handleIdempotency(ctx context.Context, key, userID uuid.UUID, requestHash string) (*queries.OrderView, error) {
	direct := uc.uow.Direct()
	expiresAt := uc.clock.Now().Add(uc.opts.IdempotencyTTL)

	inserted, err := direct.Idempotency().TryInsert(ctx, direct.DB(), key, userID, placeOrderEndpoint, requestHash, expiresAt)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := uc.uow.CommandReads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
		}
		// The stored record expired or was released in between.
		claimed, cerr := direct.Idempotency().ClaimExpired(ctx, direct.DB(), key, userID, requestHash, expiresAt)
		if cerr != nil {
			return nil, errs.Mark(cerr, errs.ErrIdempotencyCheckFailed)
		}
		if claimed == 1 {
			return nil, nil
		}
		return nil, errs.ErrIdempotencyInProgress
	}

	if existing.RequestHash != requestHash {
		return nil, errs.ErrIdempotencyKeyReused
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultOrderID == nil {
			return nil, errs.Mark(errs.New("completed request missing result order id"), errs.ErrIdempotencyCheckFailed)
		}
		return uc.orderQueries.GetByIDSystem(ctx, *existing.ResultOrderID)
	case shared.IdempotencyStatusProcessing:
		return nil, errs.ErrIdempotencyInProgress
	default:
		return nil, errs.Mark(errs.New("invalid idempotency key status"), errs.ErrIdempotencyCheckFailed)
	}
}

func (uc *checkoutUseCaseImpl) releaseKey(ctx context.Context, key, userID uuid.UUID) {
	direct := uc.uow.Direct()
	if err := direct.Idempotency().Release(context.WithoutCancel(ctx), direct.DB(), key, userID); err != nil {
		uc.logger.Warn("failed to release idempotency key", "key", key.String(), "error", err)
	}
}

func newOrderFromInput(in PlaceOrderInput) (*order.Order, error) {
	if len(in.Lines) == 0 {
		return nil, errs.Mark(order.ErrEmptyCart, ErrEmptyCart)
	}

	lines := make([]order.Line, 0, len(in.Lines))
	for _, l := range in.Lines {
		price, err := product.NewMoney(l.PriceCents)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidOrderLine)
		}
		line, err := order.NewLine(l.ProductID, l.Quantity, price)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidOrderLine)
		}
		lines = append(lines, line)
	}

	ord, err := order.NewOrder(in.UserID, lines, in.ShippingAddress, in.PaymentMethod)
	switch {
	case err == nil:
		return ord, nil
	case errors.Is(err, order.ErrEmptyCart):
		return nil, errs.Mark(err, ErrEmptyCart)
	case errors.Is(err, order.ErrShippingAddressRequired):
		return nil, errs.Mark(err, ErrShippingAddressRequired)
	default:
		return nil, errs.Mark(err, ErrInvalidOrderLine)
	}
}

// stockFailure reports a product that disappeared as having no stock left, so
// the client reconciles it the same way as a sold-out line.
func stockFailure(line order.Line, err error) error {
	if errs.Is(err, inventory.ErrProductMissing) {
		return &inventory.InsufficientStockError{ProductID: line.ProductID, Requested: line.Quantity, Available: 0}
	}
	return err
}

// linesFailure turns a line insert that hit a deleted product into the same
// shortage a failed decrement would report.
func linesFailure(lines []order.Line, err error) error {
	var missing *inventory.ProductMissingError
	if !errors.As(err, &missing) {
		return err
	}
	for _, line := range lines {
		if line.ProductID == missing.ProductID {
			return stockFailure(line, err)
		}
	}
	return err
}

// classifyCheckoutFailure maps a store error onto the checkout error taxonomy.
func classifyCheckoutFailure(err error) error {
	var shortage *inventory.InsufficientStockError
	switch {
	case errors.As(err, &shortage):
		return shortage
	case errs.Is(err, ErrCompensationFailed):
		return err
	case infra.IsKind(err, infra.KindUnavailable), errors.Is(err, context.DeadlineExceeded):
		return errs.Mark(err, ErrStoreUnavailable)
	default:
		return errs.Mark(err, ErrOrderCreateFailed)
	}
}

type orderEventPayload struct {
	OrderID    uuid.UUID        `json:"order_id"`
	UserID     uuid.UUID        `json:"user_id"`
	Status     string           `json:"status"`
	TotalCents int64            `json:"total_cents"`
	Items      []orderEventItem `json:"items"`
	OccurredAt time.Time        `json:"occurred_at"`
}

type orderEventItem struct {
	ProductID  int64 `json:"product_id"`
	Quantity   int32 `json:"quantity"`
	PriceCents int64 `json:"price_cents"`
}

func enqueueOrderEvent(ctx context.Context, tx shared.Tx, eventType string, ord *order.Order, at time.Time) error {
	payload := orderEventPayload{
		OrderID:    ord.ID(),
		UserID:     ord.UserID(),
		Status:     ord.Status().String(),
		TotalCents: ord.Total().Cents(),
		Items:      make([]orderEventItem, 0, len(ord.Lines())),
		OccurredAt: at,
	}
	for _, l := range ord.Lines() {
		payload.Items = append(payload.Items, orderEventItem{
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			PriceCents: l.UnitPrice.Cents(),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to marshal order event")
	}
	return tx.Outbox().Enqueue(ctx, tx.DB(), shared.OutboxEvent{
		AggregateID: ord.ID(),
		EventType:   eventType,
		Payload:     body,
	})
}

func orderViewFromEntity(ord *order.Order, createdAt time.Time) *queries.OrderView {
	items := make([]queries.OrderItemView, 0, len(ord.Lines()))
	for _, l := range ord.Lines() {
		items = append(items, queries.OrderItemView{
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			PriceCents: l.UnitPrice.Cents(),
		})
	}
	return &queries.OrderView{
		ID:              ord.ID(),
		UserID:          ord.UserID(),
		Status:          ord.Status().String(),
		TotalCents:      ord.Total().Cents(),
		ShippingAddress: ord.ShippingAddress(),
		PaymentMethod:   ord.PaymentMethod(),
		DeliveryTime:    ord.DeliveryTime(),
		Items:           items,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
}

func lineAttrs(lines []order.Line) []map[string]int64 {
	out := make([]map[string]int64, 0, len(lines))
	for _, l := range lines {
		out = append(out, map[string]int64{"product_id": l.ProductID, "quantity": int64(l.Quantity)})
	}
	return out
}

func calculateRequestHash(in PlaceOrderInput) string {
	h := sha256.New()
	body, _ := json.Marshal(struct {
		Lines           []OrderLineInput `json:"lines"`
		ShippingAddress string           `json:"shipping_address"`
		PaymentMethod   string           `json:"payment_method"`
	}{in.Lines, in.ShippingAddress, in.PaymentMethod})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func calculateIDHash(id uuid.UUID) string {
	sum := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(sum[:])
}
