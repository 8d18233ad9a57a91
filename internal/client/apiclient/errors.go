package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// Error is every failure returned by Client. Status is 0 for network-class
// failures. Retryable marks transient failures that survived the retry budget.
type Error struct {
	Status    int
	Message   string
	Detail    json.RawMessage
	Retryable bool
	cause     error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// StockShortage is the detail of a 409 insufficient stock response.
type StockShortage struct {
	ProductID int64 `json:"productId"`
	Requested int32 `json:"requested"`
	Available int32 `json:"available"`
}

// InsufficientStock extracts the shortage detail from a 409 response.
func (e *Error) InsufficientStock() (*StockShortage, bool) {
	if e.Status != http.StatusConflict || len(e.Detail) == 0 {
		return nil, false
	}
	var s StockShortage
	if err := json.Unmarshal(e.Detail, &s); err != nil || s.ProductID == 0 {
		return nil, false
	}
	return &s, true
}

// Reason codes of 409 idempotency conflicts.
const (
	reasonInProgress = "idempotency_in_progress"
	reasonKeyReused  = "idempotency_key_reused"
)

type conflictDetail struct {
	Reason string `json:"reason"`
}

func (e *Error) conflictReason() string {
	if e.Status != http.StatusConflict || len(e.Detail) == 0 {
		return ""
	}
	var d conflictDetail
	if err := json.Unmarshal(e.Detail, &d); err != nil {
		return ""
	}
	return d.Reason
}

// OrderInProgress reports a 409 for an idempotency key whose first request
// has not finished. The order may still be created.
func (e *Error) OrderInProgress() bool {
	return e.conflictReason() == reasonInProgress
}

// KeyReused reports a 409 for an idempotency key sent with a different body.
func (e *Error) KeyReused() bool {
	return e.conflictReason() == reasonKeyReused
}

// AsError returns the *Error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

func errorFromResponse(status int, body []byte) *Error {
	apiErr := &Error{Status: status, Retryable: status >= http.StatusInternalServerError}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		apiErr.Message = env.Error.Message
		apiErr.Detail = env.Detail
		return apiErr
	}
	apiErr.Message = statusMessage(status)
	return apiErr
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusUnauthorized:
		return "authentication required"
	case http.StatusForbidden:
		return "access denied"
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusTooManyRequests:
		return "too many requests"
	case http.StatusInternalServerError:
		return "server error"
	default:
		return http.StatusText(status)
	}
}
