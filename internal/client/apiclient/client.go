// Package apiclient is the shopper-side HTTP client for the storefront API.
// Every call runs under a per-attempt timeout; idempotent calls are retried
// with linear backoff on 5xx and network failures.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

const (
	DefaultTimeout      = 60 * time.Second
	DefaultMaxAttempts  = 3
	DefaultRetryDelay   = time.Second
	DefaultWarnCooldown = 10 * time.Second

	idempotencyHeader = "Idempotency-Key"
	maxResponseBytes  = 4 << 20
)

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	return c
}

type Client struct {
	cfg    Config
	base   *url.URL
	http   *http.Client
	warner *ConnectivityWarner
	logger *slog.Logger

	mu    sync.RWMutex
	token string
}

// NewClient builds a client for baseURL (e.g. http://localhost:8080/api).
// warner may be nil.
func NewClient(cfg Config, httpClient *http.Client, warner *ConnectivityWarner, logger *slog.Logger) (*Client, error) {
	cfg = cfg.withDefaults()
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("api base URL is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, base: base, http: httpClient, warner: warner, logger: logger}, nil
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), nil, nil, "", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) (*ProductPage, error) {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Featured {
		q.Set("featured", "true")
	}
	var page ProductPage
	if err := c.do(ctx, http.MethodGet, "/products", q, nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PlaceOrder submits an order. A blank idempotencyKey gets a fresh one so the
// request is safe to retry.
func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest, idempotencyKey string) (*Order, error) {
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}
	var o Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, req, idempotencyKey, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) ListOrders(ctx context.Context, page, limit int) (*OrderPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var p OrderPage
	if err := c.do(ctx, http.MethodGet, "/orders", q, nil, "", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CancelOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+url.PathEscape(id), nil, nil, "", nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, idempotencyKey string, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: "encode request: " + err.Error(), cause: err}
		}
		payload = b
	}

	u := *c.base
	u.Path += path
	u.RawQuery = query.Encode()
	target := u.String()

	idempotent := method == http.MethodGet || method == http.MethodHead || idempotencyKey != ""

	var respBody []byte
	attempt := 0
	op := func() error {
		attempt++
		status, b, err := c.send(ctx, method, target, payload, idempotencyKey)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return backoff.Permanent(&Error{Message: ctxErr.Error(), cause: ctxErr})
			}
			netErr := &Error{Message: err.Error(), Retryable: true, cause: err}
			if !idempotent {
				return backoff.Permanent(netErr)
			}
			return netErr
		}
		if status >= http.StatusBadRequest {
			apiErr := errorFromResponse(status, b)
			if apiErr.Retryable && idempotent {
				return apiErr
			}
			return backoff.Permanent(apiErr)
		}
		respBody = b
		return nil
	}

	policy := backoff.WithContext(newRetryPolicy(c.cfg.RetryDelay, c.cfg.MaxAttempts), ctx)
	err := backoff.RetryNotify(op, policy, func(err error, wait time.Duration) {
		c.logger.Debug("retrying request",
			"method", method,
			"path", path,
			"attempt", attempt,
			"wait", wait.String(),
			"error", err.Error())
	})
	if err != nil {
		apiErr, ok := AsError(err)
		if !ok {
			apiErr = &Error{Message: err.Error(), cause: err}
		}
		if apiErr.Status == 0 && apiErr.Retryable && c.warner != nil {
			c.warner.Warn()
		}
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{Message: "decode response: " + err.Error(), cause: err}
	}
	return nil
}

// send performs one attempt under its own timeout and reads the whole body
// before the attempt's context is released.
func (c *Client) send(ctx context.Context, method, target string, payload []byte, idempotencyKey string) (int, []byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, target, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set(idempotencyHeader, idempotencyKey)
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, b, nil
}
