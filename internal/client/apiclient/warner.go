package apiclient

import (
	"sync"
	"time"

	"storefront/internal/pkg/clock"
)

const connectivityMessage = "Cannot reach the store server. Check your connection and that the API is running."

// ConnectivityWarner shows the connectivity message at most once per cooldown,
// however many requests fail at the same time.
type ConnectivityWarner struct {
	mu        sync.Mutex
	cooldown  time.Duration
	clock     clock.Clock
	notify    func(message string)
	lastShown time.Time
}

func NewConnectivityWarner(cooldown time.Duration, clk clock.Clock, notify func(message string)) *ConnectivityWarner {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &ConnectivityWarner{cooldown: cooldown, clock: clk, notify: notify}
}

// Warn reports whether the message was shown.
func (w *ConnectivityWarner) Warn() bool {
	w.mu.Lock()
	now := w.clock.Now()
	if !w.lastShown.IsZero() && now.Sub(w.lastShown) < w.cooldown {
		w.mu.Unlock()
		return false
	}
	w.lastShown = now
	w.mu.Unlock()

	if w.notify != nil {
		w.notify(connectivityMessage)
	}
	return true
}
