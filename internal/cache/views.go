package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ericfaux/gamehost-sub002/internal/logger"
)

// ViewInvalidator deletes named view keys (and any cached responses
// tagged with them) when the engine reports them stale.  Invalidation
// is fire-and-forget: a Redis failure is logged and ignored, leaving
// cached views to age out by TTL instead.
type ViewInvalidator struct {
	rdb *redis.Client
}

func NewViewInvalidator(rdb *redis.Client) *ViewInvalidator {
	return &ViewInvalidator{rdb: rdb}
}

// Invalidate removes each view key's tag set together with the cached
// response keys registered under it.
func (v *ViewInvalidator) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	for _, key := range keys {
		members, err := v.rdb.SMembers(ctx, key).Result()
		if err != nil && err != redis.Nil {
			logger.Get().Warn("view invalidation failed", "error", err, "view", key)
			continue
		}
		if len(members) > 0 {
			if err := v.rdb.Del(ctx, members...).Err(); err != nil {
				logger.Get().Warn("view invalidation failed", "error", err, "view", key)
			}
		}
		if err := v.rdb.Del(ctx, key).Err(); err != nil {
			logger.Get().Warn("view invalidation failed", "error", err, "view", key)
		}
	}
}

// Register tags a cached response key under a view key so a later
// Invalidate on the view removes it.  Used by the response cache
// middleware.
func (v *ViewInvalidator) Register(ctx context.Context, viewKey, cacheKey string, ttl time.Duration) {
	pipe := v.rdb.TxPipeline()
	pipe.SAdd(ctx, viewKey, cacheKey)
	pipe.Expire(ctx, viewKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Get().Warn("view tag registration failed", "error", err, "view", viewKey)
	}
}
