package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"talentfolio-backend/internal/cache"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func TestTTL_SetGet(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := cache.NewTTL[string](clock)

	c.Set("key", "value", time.Minute)

	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestTTL_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := cache.NewTTL[int](clock)

	c.Set("count", 42, time.Minute)

	clock.Advance(59 * time.Second)
	_, ok := c.Get("count")
	assert.True(t, ok)

	clock.Advance(2 * time.Second)
	_, ok = c.Get("count")
	assert.False(t, ok)
}

func TestTTL_Miss(t *testing.T) {
	c := cache.NewTTL[string](nil)

	got, ok := c.Get("absent")
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestTTL_Overwrite(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := cache.NewTTL[string](clock)

	c.Set("key", "old", time.Second)
	c.Set("key", "new", time.Hour)

	clock.Advance(time.Minute)
	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestTTL_Delete(t *testing.T) {
	c := cache.NewTTL[string](nil)

	c.Set("key", "value", time.Hour)
	c.Delete("key")

	_, ok := c.Get("key")
	assert.False(t, ok)
}
