package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisRateLimiter shares fixed windows between API replicas.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zap.SugaredLogger
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, logger *zap.SugaredLogger) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limit: limit, window: window, logger: logger}
}

// Allow fails open when redis is unreachable.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	k := fmt.Sprintf("ratelimit:%s", key)

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, rl.window)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		rl.logger.Warnw("rate limiter unavailable", "error", err)
		return true, 0
	}

	if incr.Val() > int64(rl.limit) {
		wait := ttl.Val()
		if wait < 0 {
			wait = rl.window
		}
		return false, wait
	}

	return true, 0
}
