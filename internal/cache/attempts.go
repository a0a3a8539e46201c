// Package cache holds the Redis-backed collaborators the booking engine
// treats as injected components: the keyed attempt counter behind the
// self-service lookup gate and the stale-view invalidator.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptCounter is a fixed-window keyed counter.  INCR followed by a
// NX expire gives monotonic counting within a window that starts on the
// first attempt; precision races at the window boundary are acceptable.
type AttemptCounter struct {
	rdb *redis.Client
}

// NewAttemptCounter wraps a Redis client.  Callers should skip wiring
// the counter entirely when the client is nil.
func NewAttemptCounter(rdb *redis.Client) *AttemptCounter {
	return &AttemptCounter{rdb: rdb}
}

// Incr bumps the counter for key and returns the count within the
// current window.  The expiry is only set when the key has none, so
// later attempts never extend the window.
func (a *AttemptCounter) Incr(ctx context.Context, key string, window time.Duration) (int, error) {
	pipe := a.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}
