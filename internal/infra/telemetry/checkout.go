package telemetry

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/domain/inventory"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const checkoutTracerName = "storefront/internal/usecase/commands/checkout"

// TracedCheckout decorates checkout with a span per order and counters for
// placed and rejected orders.
type TracedCheckout struct {
	inner   commands.CheckoutCommands
	tracer  trace.Tracer
	logger  *slog.Logger
	placed  metric.Int64Counter
	refused metric.Int64Counter
}

func NewTracedCheckout(inner commands.CheckoutCommands, inst *Instruments, logger *slog.Logger) commands.CheckoutCommands {
	meter := inst.Meter(checkoutTracerName)
	placed, _ := meter.Int64Counter("checkout.orders_placed", metric.WithDescription("Orders placed"))
	refused, _ := meter.Int64Counter("checkout.orders_rejected", metric.WithDescription("Checkouts that did not create an order"))
	return &TracedCheckout{
		inner:   inner,
		tracer:  inst.Tracer(checkoutTracerName),
		logger:  logger,
		placed:  placed,
		refused: refused,
	}
}

func (t *TracedCheckout) PlaceOrder(ctx context.Context, in commands.PlaceOrderInput) (*commands.PlaceOrderResult, error) {
	ctx, span := t.tracer.Start(ctx, "Checkout.PlaceOrder", trace.WithAttributes(
		attribute.String("user.id", in.UserID.String()),
		attribute.Int("order.lines", len(in.Lines)),
		attribute.Bool("idempotency.key_present", in.IdempotencyKey != nil),
	))
	defer span.End()

	result, err := t.inner.PlaceOrder(ctx, in)
	if err != nil {
		reason := rejectionReason(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		if t.refused != nil {
			t.refused.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
		}
		t.logger.DebugContext(ctx, "checkout rejected", "reason", reason, "trace_id", span.SpanContext().TraceID().String())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order.id", result.Order.ID.String()),
		attribute.Int64("order.total_cents", result.Order.TotalCents),
		attribute.Bool("idempotency.replayed", result.IsReplayed),
	)
	if t.placed != nil && !result.IsReplayed {
		t.placed.Add(ctx, 1)
	}
	return result, nil
}

func rejectionReason(err error) string {
	var shortage *inventory.InsufficientStockError
	switch {
	case errors.As(err, &shortage):
		return "insufficient_stock"
	case errs.Is(err, commands.ErrEmptyCart),
		errs.Is(err, commands.ErrInvalidOrderLine),
		errs.Is(err, commands.ErrShippingAddressRequired):
		return "validation"
	case errs.Is(err, commands.ErrStoreUnavailable):
		return "unavailable"
	case errs.Is(err, commands.ErrCompensationFailed):
		return "compensation_failed"
	case errs.Is(err, errs.ErrIdempotencyInProgress), errs.Is(err, errs.ErrIdempotencyKeyReused):
		return "idempotency"
	default:
		return "failed"
	}
}

var _ commands.CheckoutCommands = (*TracedCheckout)(nil)
