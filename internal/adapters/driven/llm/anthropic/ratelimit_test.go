package anthropic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter_Defaults(t *testing.T) {
	r := newRateLimiter(0, 0)
	assert.Equal(t, DefaultBurst, r.limiter.Burst())
	assert.InDelta(t, DefaultRequestsPerSecond, float64(r.limiter.Limit()), 0.001)
}

func TestRateLimiter_WaitAllowsBurst(t *testing.T) {
	r := newRateLimiter(1, 3)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Wait(ctx))
	}
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestRateLimiter_BackoffBlocks(t *testing.T) {
	r := newRateLimiter(100, 10)
	r.Backoff(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}

func TestRateLimiter_BackoffDefault(t *testing.T) {
	r := newRateLimiter(1, 1)
	r.Backoff(0)

	assert.WithinDuration(t, time.Now().Add(defaultBackoff), r.retryAt, time.Second)
}
