package order

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/domain/product"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart               = errors.New("cart is empty")
	ErrInvalidLine             = errors.New("order line must have a product, a positive quantity and a non-negative price")
	ErrShippingAddressRequired = errors.New("shipping address is required")
	ErrTotalTooLarge           = errors.New("order total exceeds the largest storable amount")
	ErrNotPending              = errors.New("order is no longer pending")
	ErrNotOwner                = errors.New("order belongs to another user")
)

// Line is one product in an order. UnitPrice is the price the buyer saw and
// is never re-read from the catalog.
type Line struct {
	ProductID int64
	Quantity  int32
	UnitPrice product.Money
}

func (l Line) Subtotal() product.Money {
	return l.UnitPrice.Times(l.Quantity)
}

func NewLine(productID int64, quantity int32, unitPrice product.Money) (Line, error) {
	if productID <= 0 || quantity <= 0 || unitPrice.Cents() < 0 {
		return Line{}, ErrInvalidLine
	}
	return Line{ProductID: productID, Quantity: quantity, UnitPrice: unitPrice}, nil
}

type Order struct {
	id              uuid.UUID
	userID          uuid.UUID
	lines           []Line
	status          Status
	shippingAddress string
	paymentMethod   string
	total           product.Money
	deliveryTime    *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

// NewOrder builds a pending order. The total is the flat sum of line subtotals.
func NewOrder(userID uuid.UUID, lines []Line, shippingAddress, paymentMethod string) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	address := strings.TrimSpace(shippingAddress)
	if address == "" {
		return nil, ErrShippingAddressRequired
	}
	if paymentMethod == "" {
		paymentMethod = PaymentMethodCard
	}

	var total product.Money
	for _, l := range lines {
		if l.ProductID <= 0 || l.Quantity <= 0 || l.UnitPrice.Cents() < 0 {
			return nil, ErrInvalidLine
		}
		subtotal, ok := l.UnitPrice.CheckedTimes(l.Quantity)
		if !ok {
			return nil, ErrTotalTooLarge
		}
		if total, ok = total.CheckedAdd(subtotal); !ok {
			return nil, ErrTotalTooLarge
		}
	}

	copied := make([]Line, len(lines))
	copy(copied, lines)

	return &Order{
		id:              uuid.New(),
		userID:          userID,
		lines:           copied,
		status:          StatusPending,
		shippingAddress: address,
		paymentMethod:   paymentMethod,
		total:           total,
	}, nil
}

func ReconstructOrder(
	id, userID uuid.UUID,
	lines []Line,
	status Status,
	shippingAddress, paymentMethod string,
	total product.Money,
	deliveryTime *time.Time,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:              id,
		userID:          userID,
		lines:           lines,
		status:          status,
		shippingAddress: shippingAddress,
		paymentMethod:   paymentMethod,
		total:           total,
		deliveryTime:    deliveryTime,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (o *Order) IsPending() bool { return o.status == StatusPending }

func (o *Order) EnsureOwnedBy(userID uuid.UUID) error {
	if o.userID != userID {
		return ErrNotOwner
	}
	return nil
}

// Cancel moves a pending order to cancelled. The caller restocks the lines.
func (o *Order) Cancel() error {
	if !o.IsPending() {
		return ErrNotPending
	}
	o.status = StatusCancelled
	return nil
}

// UpdateDetails edits the shipping address and delivery time of a pending order.
func (o *Order) UpdateDetails(shippingAddress *string, deliveryTime *time.Time) error {
	if !o.IsPending() {
		return ErrNotPending
	}
	if shippingAddress != nil {
		a := strings.TrimSpace(*shippingAddress)
		if a == "" {
			return ErrShippingAddressRequired
		}
		o.shippingAddress = a
	}
	if deliveryTime != nil {
		t := *deliveryTime
		o.deliveryTime = &t
	}
	return nil
}

func (o *Order) SetStatus(s Status) error {
	if !s.IsValid() {
		return ErrInvalidStatus
	}
	o.status = s
	return nil
}

func (o *Order) ID() uuid.UUID            { return o.id }
func (o *Order) UserID() uuid.UUID        { return o.userID }
func (o *Order) Lines() []Line            { return o.lines }
func (o *Order) Status() Status           { return o.status }
func (o *Order) ShippingAddress() string  { return o.shippingAddress }
func (o *Order) PaymentMethod() string    { return o.paymentMethod }
func (o *Order) Total() product.Money     { return o.total }
func (o *Order) DeliveryTime() *time.Time { return o.deliveryTime }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }
func (o *Order) UpdatedAt() time.Time     { return o.updatedAt }
