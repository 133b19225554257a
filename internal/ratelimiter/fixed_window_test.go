package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindow_LimitsPerClient(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	rl := NewFixedWindowLimiter(2, 5*time.Second)
	rl.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _ := rl.Allow(ctx, "1.1.1.1")
	assert.True(t, ok)
	ok, _ = rl.Allow(ctx, "1.1.1.1")
	assert.True(t, ok)

	ok, wait := rl.Allow(ctx, "1.1.1.1")
	assert.False(t, ok)
	assert.Equal(t, 5*time.Second, wait)

	ok, _ = rl.Allow(ctx, "2.2.2.2")
	assert.True(t, ok, "other clients have their own window")
}

func TestFixedWindow_ResetsAfterWindow(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	rl := NewFixedWindowLimiter(1, time.Second)
	rl.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _ := rl.Allow(ctx, "ip")
	assert.True(t, ok)
	ok, _ = rl.Allow(ctx, "ip")
	assert.False(t, ok)

	now = now.Add(time.Second)
	ok, _ = rl.Allow(ctx, "ip")
	assert.True(t, ok)
	assert.Len(t, rl.clients, 1)
}
