//go:build unit

package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront/internal/pkg/clock"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string, warner *ConnectivityWarner) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := NewClient(Config{
		BaseURL:     baseURL,
		Timeout:     time.Second,
		MaxAttempts: 3,
		RetryDelay:  time.Millisecond,
	}, nil, warner, logger)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestGetProduct_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/4", r.URL.Path)
		if calls.Add(1) < 3 {
			writeJSON(w, http.StatusBadGateway, map[string]any{"error": map[string]string{"message": "upstream"}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 4, "title": "Mug", "price": 12.5, "quantity": 3})
	}))
	defer srv.Close()

	p, err := newTestClient(t, srv.URL+"/api", nil).GetProduct(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "Mug", p.Title)
	assert.Equal(t, int32(3), p.Quantity)
	assert.InDelta(t, 12.5, p.Price, 0.0001)
}

func TestGetProduct_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, nil).GetProduct(context.Background(), 1)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.True(t, apiErr.Retryable)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]string{"message": "Product not found"}})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, nil).GetProduct(context.Background(), 99)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Product not found", apiErr.Message)
	assert.False(t, apiErr.Retryable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNonIdempotentRequestIsSentOnce(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Empty(t, r.Header.Get("Idempotency-Key"))
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestClient(t, srv.URL, nil).CancelOrder(context.Background(), "abc")

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestPlaceOrder_RetriesWithTheSameKey(t *testing.T) {
	var (
		mu   sync.Mutex
		keys []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		n := len(keys)
		mu.Unlock()

		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body PlaceOrderRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1 Main St", body.ShippingAddress)

		if n == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": "0f8fad5b-d9cb-469f-a165-70867728950e", "status": "pending", "total_amount": 200})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	c.SetToken("tok")

	o, err := c.PlaceOrder(context.Background(), PlaceOrderRequest{
		Items:           []OrderItem{{ID: 1, Quantity: 2, Price: 100}},
		ShippingAddress: "1 Main St",
		PaymentMethod:   "card",
	}, "")

	require.NoError(t, err)
	assert.Equal(t, "pending", o.Status)
	assert.InDelta(t, 200, o.TotalAmount, 0.0001)
	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.Equal(t, keys[0], keys[1])
}

func TestPlaceOrder_StockConflictDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":  map[string]string{"message": "Insufficient stock"},
			"detail": map[string]any{"productId": 7, "requested": 3, "available": 1},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	c.SetToken("tok")
	_, err := c.PlaceOrder(context.Background(), PlaceOrderRequest{}, "key")

	apiErr, ok := AsError(err)
	require.True(t, ok)
	shortage, ok := apiErr.InsufficientStock()
	require.True(t, ok)
	assert.Equal(t, &StockShortage{ProductID: 7, Requested: 3, Available: 1}, shortage)
}

func TestPlaceOrder_IdempotencyConflictReasons(t *testing.T) {
	tests := []struct {
		name         string
		detail       any
		wantProgress bool
		wantReused   bool
	}{
		{name: "in progress", detail: map[string]string{"reason": "idempotency_in_progress"}, wantProgress: true},
		{name: "key reused", detail: map[string]string{"reason": "idempotency_key_reused"}, wantReused: true},
		{name: "stock shortage", detail: map[string]any{"productId": 7, "requested": 3, "available": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusConflict, map[string]any{
					"error":  map[string]string{"message": "conflict"},
					"detail": tt.detail,
				})
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL, nil)
			c.SetToken("tok")
			_, err := c.PlaceOrder(context.Background(), PlaceOrderRequest{}, "key")

			apiErr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantProgress, apiErr.OrderInProgress())
			assert.Equal(t, tt.wantReused, apiErr.KeyReused())
		})
	}
}

func TestNetworkFailureWarnsOnce(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var shown []string
	warner := NewConnectivityWarner(10*time.Second, clock.NewMockClock(time.Unix(0, 0)), func(m string) {
		shown = append(shown, m)
	})
	c := newTestClient(t, url, warner)

	_, err1 := c.GetProduct(context.Background(), 1)
	_, err2 := c.ListProducts(context.Background(), ListProductsParams{Page: 1})

	for _, err := range []error{err1, err2} {
		apiErr, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, 0, apiErr.Status)
		assert.True(t, apiErr.Retryable)
	}
	assert.Len(t, shown, 1)
}

func TestPerAttemptTimeout(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := NewClient(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond, MaxAttempts: 2, RetryDelay: time.Millisecond}, nil, nil, logger)
	require.NoError(t, err)

	_, err = c.GetProduct(context.Background(), 1)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCancelledContextStopsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, srv.URL, nil).GetProduct(ctx, 1)

	require.Error(t, err)
	assert.LessOrEqual(t, calls.Load(), int32(1))
}

func TestLinearBackOff(t *testing.T) {
	b := &linearBackOff{delay: time.Second}
	assert.Equal(t, time.Second, b.NextBackOff())
	assert.Equal(t, 2*time.Second, b.NextBackOff())
	assert.Equal(t, 3*time.Second, b.NextBackOff())
	b.Reset()
	assert.Equal(t, time.Second, b.NextBackOff())

	policy := newRetryPolicy(time.Second, 3)
	policy.Reset()
	assert.Equal(t, time.Second, policy.NextBackOff())
	assert.Equal(t, 2*time.Second, policy.NextBackOff())
	assert.Equal(t, backoff.Stop, policy.NextBackOff())
}

func TestConnectivityWarnerCooldown(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	var count int
	w := NewConnectivityWarner(10*time.Second, clk, func(string) { count++ })

	assert.True(t, w.Warn())
	assert.False(t, w.Warn())

	clk.Add(9 * time.Second)
	assert.False(t, w.Warn())

	clk.Add(time.Second)
	assert.True(t, w.Warn())
	assert.Equal(t, 2, count)
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{}, nil, nil, nil)
	assert.Error(t, err)
}
