package backend

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle spaces outbound requests with a token bucket.
// A nil Throttle or a zero rate never blocks.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle allowing requestsPerSecond with a burst of one.
// It returns nil when requestsPerSecond is not positive.
func NewThrottle(requestsPerSecond float64) *Throttle {
	if requestsPerSecond <= 0 {
		return nil
	}
	return &Throttle{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Wait blocks until a request may be sent or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil {
		return nil
	}
	return t.limiter.Wait(ctx)
}
