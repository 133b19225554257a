package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	count   int
	resetAt time.Time
}

// FixedWindowRateLimiter counts requests per client in process memory.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]*bucket
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*bucket),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

func (rl *FixedWindowRateLimiter) Allow(_ context.Context, key string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	b, ok := rl.clients[key]
	if !ok || !now.Before(b.resetAt) {
		rl.sweep(now)
		rl.clients[key] = &bucket{count: 1, resetAt: now.Add(rl.window)}
		return true, 0
	}

	if b.count < rl.limit {
		b.count++
		return true, 0
	}

	return false, b.resetAt.Sub(now)
}

// sweep drops expired buckets so idle clients do not accumulate.
func (rl *FixedWindowRateLimiter) sweep(now time.Time) {
	for k, b := range rl.clients {
		if !now.Before(b.resetAt) {
			delete(rl.clients, k)
		}
	}
}
