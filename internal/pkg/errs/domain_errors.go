package errs

import "errors"

// Sentinel errors shared by the usecase and handler layers
var (
	// Idempotency errors
	ErrInvalidIdempotencyKey  = errors.New("invalid idempotency key")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyKeyReused   = errors.New("idempotency key reused with different request")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Access errors
	ErrForbidden = errors.New("forbidden")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
