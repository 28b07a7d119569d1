package anthropic

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Default request budget. Well below Anthropic tier-1 limits.
const (
	DefaultRequestsPerSecond = 1.0
	DefaultBurst             = 3
	defaultBackoff           = 30 * time.Second
)

// rateLimiter is a token bucket with a backoff window set by 429 responses.
type rateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

func newRateLimiter(rps float64, burst int) *rateLimiter {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &rateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Wait blocks until a request may be sent, honouring any backoff window.
func (r *rateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// Backoff delays further requests. Non-positive durations use the default.
func (r *rateLimiter) Backoff(d time.Duration) {
	if d <= 0 {
		d = defaultBackoff
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = time.Now().Add(d)
}
