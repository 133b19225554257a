package ratelimiter

import (
	"context"
	"time"
)

// Limiter decides whether the client identified by key may make another
// request. When it may not, the returned duration is how long to wait.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration)
}

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}
