package cart

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"storefront/internal/client/apiclient"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultSyncConcurrency = 8
	paymentMethodCard      = "card"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNotAuthenticated = errors.New("sign in to place an order")
	ErrAddressRequired  = errors.New("shipping address is required")
	ErrExceedsStock     = errors.New("quantity exceeds available stock")
)

// API is the part of the storefront API the reconciler needs.
type API interface {
	GetProduct(ctx context.Context, id int64) (*apiclient.Product, error)
	PlaceOrder(ctx context.Context, req apiclient.PlaceOrderRequest, idempotencyKey string) (*apiclient.Order, error)
	Authenticated() bool
}

type Store interface {
	LoadCart() ([]Line, error)
	SaveCart(lines []Line) error
	LoadPendingCheckout() (*PendingCheckout, error)
	// SavePendingCheckout stores p; nil clears it.
	SavePendingCheckout(p *PendingCheckout) error
}

// PendingCheckout is an order submission whose outcome is not known. Its key
// is sent again as long as the same cart goes to the same address, so a
// request the server already committed is replayed instead of duplicated.
type PendingCheckout struct {
	Key         string `json:"key"`
	Fingerprint string `json:"fingerprint"`
}

type Clamp struct {
	ProductID int64
	Title     string
	From      int32
	To        int32
}

// SyncReport lists what a sync changed. Failed holds ids whose stock read
// failed; their lines were left as they were.
type SyncReport struct {
	Clamped []Clamp
	Removed []int64
	Failed  []int64
}

func (r SyncReport) Changed() bool {
	return len(r.Clamped) > 0 || len(r.Removed) > 0
}

type Receipt struct {
	OrderID string
	ShortID string
	Total   float64
	Status  string
}

type Option func(*Reconciler)

func WithSyncConcurrency(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.syncConcurrency = n
		}
	}
}

type Reconciler struct {
	cart            *Cart
	api             API
	store           Store
	notifier        Notifier
	logger          *slog.Logger
	syncConcurrency int
	checkoutMu      sync.Mutex
}

func NewReconciler(c *Cart, api API, store Store, notifier Notifier, logger *slog.Logger, opts ...Option) *Reconciler {
	r := &Reconciler{
		cart:            c,
		api:             api,
		store:           store,
		notifier:        notifier,
		logger:          logger,
		syncConcurrency: defaultSyncConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load restores a cart saved by store. A missing file is an empty cart.
// Restored lines are unsynced until their stock is read again.
func Load(store Store) (*Cart, error) {
	lines, err := store.LoadCart()
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].State = StateUnsynced
	}
	return New(lines), nil
}

func (r *Reconciler) Cart() *Cart { return r.cart }

// AddToCart adds one unit of p. The max is re-read from the server; when the
// read fails the quantity on p is used.
func (r *Reconciler) AddToCart(ctx context.Context, p apiclient.Product) error {
	maxQty := p.Quantity
	fresh, read := r.readStock(ctx, p.ID)
	if read {
		maxQty = fresh
	}

	var (
		added   bool
		created bool
	)
	lines := r.cart.update(func(lines []Line) []Line {
		i := indexOf(lines, p.ID)
		if i < 0 {
			if maxQty <= 0 {
				return lines
			}
			created, added = true, true
			state := StateUnsynced
			if read {
				state = StateSynced
			}
			return append(lines, Line{
				ProductID:   p.ID,
				Title:       p.Title,
				Price:       p.Price,
				Quantity:    1,
				MaxQuantity: &maxQty,
				State:       state,
			})
		}
		if read {
			lines[i].observe(fresh)
		} else {
			lines[i].MaxQuantity = &maxQty
		}
		if lines[i].Quantity >= maxQty {
			return lines
		}
		lines[i].Quantity++
		added = true
		return lines
	})

	if !added {
		r.notify(LevelError, fmt.Sprintf("Cannot add more than is in stock (%d)", maxQty))
		return ErrExceedsStock
	}
	r.save(lines)
	if created {
		r.notify(LevelSuccess, fmt.Sprintf("%s added to cart!", p.Title))
	} else {
		r.notify(LevelSuccess, fmt.Sprintf("+1 × %s", p.Title))
	}
	return nil
}

// ChangeQuantity applies delta to a line. Increases re-read stock first;
// decreases apply immediately. A line at zero or below is removed.
func (r *Reconciler) ChangeQuantity(ctx context.Context, productID int64, delta int32) error {
	if delta == 0 || indexOf(r.cart.Lines(), productID) < 0 {
		return nil
	}

	var fresh *int32
	if delta > 0 {
		if q, ok := r.readStock(ctx, productID); ok {
			fresh = &q
		}
	}

	var (
		limit    int32
		exceeded bool
		removed  bool
	)
	lines := r.cart.update(func(lines []Line) []Line {
		i := indexOf(lines, productID)
		if i < 0 {
			return lines
		}
		if fresh != nil {
			lines[i].observe(*fresh)
		}
		if delta > 0 && lines[i].MaxQuantity != nil && lines[i].Quantity+delta > *lines[i].MaxQuantity {
			limit, exceeded = *lines[i].MaxQuantity, true
			return lines
		}
		lines[i].Quantity += delta
		if lines[i].Quantity <= 0 {
			removed = true
			return append(lines[:i], lines[i+1:]...)
		}
		lines[i].settle()
		return lines
	})

	if exceeded {
		r.notify(LevelError, fmt.Sprintf("Cannot add more than is in stock (%d)", limit))
		return ErrExceedsStock
	}
	r.save(lines)
	if removed {
		r.notify(LevelInfo, "Item removed from cart")
	}
	return nil
}

// SyncCart reads stock for every distinct product concurrently, then removes
// sold-out lines and clamps lines above the stock on hand. Prices are kept.
func (r *Reconciler) SyncCart(ctx context.Context, silent bool) (SyncReport, error) {
	ids := r.cart.productIDs()
	if len(ids) == 0 {
		return SyncReport{}, nil
	}

	stock := make([]*int32, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.syncConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			if q, ok := r.readStock(gctx, id); ok {
				stock[i] = &q
			}
			return nil
		})
	}
	_ = g.Wait()

	byID := make(map[int64]int32, len(ids))
	var report SyncReport
	for i, id := range ids {
		if stock[i] == nil {
			report.Failed = append(report.Failed, id)
			continue
		}
		byID[id] = *stock[i]
	}

	lines := r.cart.update(func(lines []Line) []Line {
		kept := lines[:0]
		for _, l := range lines {
			q, ok := byID[l.ProductID]
			if !ok {
				kept = append(kept, l)
				continue
			}
			l.observe(q)
			switch {
			case q <= 0:
				report.Removed = append(report.Removed, l.ProductID)
				continue
			case l.Quantity > q:
				report.Clamped = append(report.Clamped, Clamp{ProductID: l.ProductID, Title: l.Title, From: l.Quantity, To: q})
				l.Quantity = q
				l.settle()
			}
			kept = append(kept, l)
		}
		return kept
	})

	if !silent {
		for _, c := range report.Clamped {
			r.notify(LevelInfo, fmt.Sprintf("Quantity of %q reduced to %d", c.Title, c.To))
		}
		if len(report.Removed) > 0 {
			r.notify(LevelInfo, "Some items were removed from the cart (sold out)")
		}
	}
	if report.Changed() || len(byID) > 0 {
		if err := r.store.SaveCart(lines); err != nil {
			return report, err
		}
	}
	return report, nil
}

// Checkout submits the cart. The cart is cleared only when the order is
// created; on a stock shortage it is shrunk with a silent sync.
func (r *Reconciler) Checkout(ctx context.Context, shippingAddress string) (*Receipt, error) {
	r.checkoutMu.Lock()
	defer r.checkoutMu.Unlock()

	lines := r.cart.Lines()
	if len(lines) == 0 {
		r.notify(LevelError, "Your cart is empty!")
		return nil, ErrEmptyCart
	}
	if !r.api.Authenticated() {
		r.notify(LevelError, "Sign in to place an order")
		return nil, ErrNotAuthenticated
	}
	address := strings.TrimSpace(shippingAddress)
	if address == "" {
		r.notify(LevelError, "Enter a shipping address")
		return nil, ErrAddressRequired
	}

	req := apiclient.PlaceOrderRequest{
		Items:           make([]apiclient.OrderItem, len(lines)),
		ShippingAddress: address,
		PaymentMethod:   paymentMethodCard,
	}
	for i, l := range lines {
		req.Items[i] = apiclient.OrderItem{ID: l.ProductID, Quantity: l.Quantity, Price: l.Price}
	}

	pending := r.pendingCheckout(req)
	order, err := r.api.PlaceOrder(ctx, req, pending.Key)
	if err != nil {
		if outcomeKnown(err) {
			r.savePending(nil)
		}
		r.handleCheckoutError(ctx, lines, err)
		return nil, err
	}
	r.savePending(nil)

	receipt := &Receipt{
		OrderID: order.ID,
		ShortID: shortID(order.ID),
		Total:   order.TotalAmount,
		Status:  order.Status,
	}
	r.notify(LevelSuccess, fmt.Sprintf("Order #%s placed!", receipt.ShortID))
	r.save(r.cart.update(func([]Line) []Line { return nil }))
	return receipt, nil
}

func (r *Reconciler) RemoveFromCart(productID int64) {
	lines := r.cart.update(func(lines []Line) []Line {
		if i := indexOf(lines, productID); i >= 0 {
			return append(lines[:i], lines[i+1:]...)
		}
		return lines
	})
	r.save(lines)
	r.notify(LevelInfo, "Item removed from cart")
}

func (r *Reconciler) Clear() {
	r.save(r.cart.update(func([]Line) []Line { return nil }))
	r.notify(LevelInfo, "Cart cleared")
}

func (r *Reconciler) handleCheckoutError(ctx context.Context, lines []Line, err error) {
	apiErr, ok := apiclient.AsError(err)
	if !ok {
		r.notify(LevelError, "Checkout failed")
		return
	}
	if shortage, ok := apiErr.InsufficientStock(); ok {
		title := fmt.Sprintf("product %d", shortage.ProductID)
		if i := indexOf(lines, shortage.ProductID); i >= 0 {
			title = fmt.Sprintf("%q", lines[i].Title)
		}
		r.notify(LevelError, fmt.Sprintf("Only %d of %s left in stock", shortage.Available, title))
		if _, serr := r.SyncCart(ctx, true); serr != nil {
			r.logger.Warn("cart sync after stock conflict failed", "error", serr)
		}
		return
	}
	if apiErr.OrderInProgress() {
		r.notify(LevelInfo, "Your order is still being processed. Check your orders before trying again")
		return
	}
	// Network failures are reported once by the connectivity warner.
	if apiErr.Status == 0 {
		return
	}
	r.notify(LevelError, apiErr.Message)
}

// readStock returns the server's quantity for id. Read failures are logged
// and never shown to the user.
func (r *Reconciler) readStock(ctx context.Context, id int64) (int32, bool) {
	p, err := r.api.GetProduct(ctx, id)
	if err != nil {
		r.logger.Debug("stock read failed", "product_id", id, "error", err)
		return 0, false
	}
	return p.Quantity, true
}

// pendingCheckout returns the stored submission when it is for the same
// request, otherwise a new one with a fresh key. The new one is stored before
// it is sent.
func (r *Reconciler) pendingCheckout(req apiclient.PlaceOrderRequest) *PendingCheckout {
	fingerprint := checkoutFingerprint(req)
	stored, err := r.store.LoadPendingCheckout()
	if err != nil {
		r.logger.Warn("failed to load pending checkout", "error", err)
	}
	if stored != nil && stored.Key != "" && stored.Fingerprint == fingerprint {
		return stored
	}
	p := &PendingCheckout{Key: uuid.NewString(), Fingerprint: fingerprint}
	r.savePending(p)
	return p
}

func (r *Reconciler) savePending(p *PendingCheckout) {
	if err := r.store.SavePendingCheckout(p); err != nil {
		r.logger.Warn("failed to persist pending checkout", "error", err)
	}
}

// outcomeKnown reports whether err settles the submission. Network failures,
// 5xx and an in-progress conflict may hide a committed order.
func outcomeKnown(err error) bool {
	apiErr, ok := apiclient.AsError(err)
	if !ok {
		return false
	}
	switch {
	case apiErr.Status == 0, apiErr.Status >= 500, apiErr.OrderInProgress():
		return false
	default:
		return true
	}
}

func checkoutFingerprint(req apiclient.PlaceOrderRequest) string {
	b, _ := json.Marshal(req)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func (r *Reconciler) save(lines []Line) {
	if err := r.store.SaveCart(lines); err != nil {
		r.logger.Warn("failed to persist cart", "error", err)
		r.notify(LevelError, "Failed to save cart")
	}
}

func (r *Reconciler) notify(level Level, message string) {
	if r.notifier != nil {
		r.notifier.Notify(level, message)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
