package ratelimit_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentfolio-backend/internal/ratelimit"
)

func newLimiter(t *testing.T, mr *miniredis.Miniredis, limit int, window time.Duration) *ratelimit.FixedWindowLimiter {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter, err := ratelimit.NewFixedWindowLimiter(client, "test:ratelimit", limit, window)
	require.NoError(t, err)
	return limiter
}

func TestFixedWindow_AllowsUpToLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	limiter := newLimiter(t, mr, 3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("user-1"), "request %d", i+1)
	}
	assert.False(t, limiter.Allow("user-1"))
}

func TestFixedWindow_IndependentKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	limiter := newLimiter(t, mr, 1, time.Minute)

	assert.True(t, limiter.Allow("user-1"))
	assert.True(t, limiter.Allow("user-2"))
	assert.False(t, limiter.Allow("user-1"))
}

func TestFixedWindow_ResetsAfterWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	limiter := newLimiter(t, mr, 1, time.Second)

	assert.True(t, limiter.Allow("user-1"))
	assert.False(t, limiter.Allow("user-1"))

	mr.FastForward(1100 * time.Millisecond)
	assert.True(t, limiter.Allow("user-1"))
}

func TestFixedWindow_FailsClosedOnRedisError(t *testing.T) {
	mr := miniredis.RunT(t)
	limiter := newLimiter(t, mr, 5, time.Minute)
	mr.Close()

	assert.False(t, limiter.Allow("user-1"))
}

func TestNewFixedWindowLimiter_Validation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	_, err := ratelimit.NewFixedWindowLimiter(nil, "p", 1, time.Minute)
	assert.Error(t, err)

	_, err = ratelimit.NewFixedWindowLimiter(client, "p", 0, time.Minute)
	assert.Error(t, err)

	_, err = ratelimit.NewFixedWindowLimiter(client, "p", 1, 0)
	assert.Error(t, err)
}
