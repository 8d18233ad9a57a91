// Package cart holds the shopper's pending cart and keeps it aligned with
// the server's stock. Quantities here are hints; the server's conditional
// decrement is the only guarantee.
package cart

import (
	"slices"
	"sync"
)

// LineState tracks how far a line can be trusted against server stock.
type LineState string

const (
	// StateUnsynced: no stock read has succeeded since the line was loaded or created.
	StateUnsynced LineState = "unsynced"
	StateSynced   LineState = "synced"
	// StateStale: a read showed less stock than MaxQuantity assumed and the
	// quantity has not been brought back under it yet.
	StateStale LineState = "stale"
)

// Line is one product in the cart. Price is captured when the product is
// added and is what checkout submits. MaxQuantity is the stock seen at the
// last read, nil until the first read succeeds.
type Line struct {
	ProductID   int64     `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Quantity    int32     `json:"quantity"`
	MaxQuantity *int32    `json:"maxQuantity,omitempty"`
	State       LineState `json:"state,omitempty"`
}

// observe records a successful stock read.
func (l *Line) observe(stock int32) {
	prev := l.MaxQuantity
	l.MaxQuantity = &stock
	if prev != nil && stock < *prev {
		l.State = StateStale
	} else if l.State != StateStale {
		l.State = StateSynced
	}
	l.settle()
}

// settle moves a stale line back to synced once its quantity fits.
func (l *Line) settle() {
	if l.State == StateStale && l.MaxQuantity != nil && l.Quantity <= *l.MaxQuantity {
		l.State = StateSynced
	}
}

// Cart is safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

// New builds a cart from lines. Lines without a state start unsynced.
func New(lines []Line) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if l.State == "" {
			l.State = StateUnsynced
		}
		c.lines = append(c.lines, l)
	}
	return c
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.lines)
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sum float64
	for _, l := range c.lines {
		sum += l.Price * float64(l.Quantity)
	}
	return sum
}

func (c *Cart) ItemCount() int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int32
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) productIDs() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]int64, 0, len(c.lines))
	seen := make(map[int64]struct{}, len(c.lines))
	for _, l := range c.lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}

// update runs fn with the lock held and returns a snapshot taken afterwards.
func (c *Cart) update(fn func(lines []Line) []Line) []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = fn(c.lines)
	return slices.Clone(c.lines)
}

func indexOf(lines []Line, productID int64) int {
	return slices.IndexFunc(lines, func(l Line) bool { return l.ProductID == productID })
}
