package apiclient

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// linearBackOff waits delay, 2*delay, 3*delay, ... between attempts.
type linearBackOff struct {
	delay   time.Duration
	attempt int
}

var _ backoff.BackOff = (*linearBackOff)(nil)

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return b.delay * time.Duration(b.attempt)
}

func (b *linearBackOff) Reset() { b.attempt = 0 }

// newRetryPolicy allows maxAttempts tries in total.
func newRetryPolicy(delay time.Duration, maxAttempts int) backoff.BackOff {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return backoff.WithMaxRetries(&linearBackOff{delay: delay}, uint64(maxAttempts-1)) // #nosec G115 -- positive
}
