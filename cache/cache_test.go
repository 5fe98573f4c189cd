package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances manually so expiry can be tested without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCacheSetGet(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(clock.Now)

	c.Set("key", "value", 30*time.Minute)

	got, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestCacheGetMissing(t *testing.T) {
	c := New()

	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(clock.Now)

	c.Set("key", 42, 30*time.Minute)

	clock.Advance(29 * time.Minute)
	got, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, 42, got)

	clock.Advance(time.Minute + time.Second)
	_, ok = c.Get("key")
	assert.False(t, ok)

	// Expired entries are evicted lazily on Get.
	assert.Equal(t, 0, c.Len())
}

func TestCacheExpiryBoundary(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(clock.Now)

	c.Set("key", "v", 10*time.Minute)
	clock.Advance(10 * time.Minute)

	// now == expiry counts as expired.
	_, ok := c.Get("key")
	assert.False(t, ok)
}

func TestCacheOverwrite(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(clock.Now)

	c.Set("key", "old", time.Minute)
	c.Set("key", "new", time.Hour)

	clock.Advance(30 * time.Minute)
	got, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestCacheDefaultTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(clock.Now)

	c.Set("key", "v", 0)

	clock.Advance(29 * time.Minute)
	_, ok := c.Get("key")
	assert.True(t, ok)

	clock.Advance(2 * time.Minute)
	_, ok = c.Get("key")
	assert.False(t, ok)
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New()
	c.Set("a", 1, time.Hour)
	c.Set("b", 2, time.Hour)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)

	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCacheSweepExpired(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(clock.Now)

	c.Set("short-a", 1, time.Minute)
	c.Set("short-b", 2, time.Minute)
	c.Set("long", 3, time.Hour)

	clock.Advance(5 * time.Minute)

	removed := c.SweepExpired()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("long")
	assert.True(t, ok)
}

func TestCacheGetStale(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(clock.Now)

	c.Set("key", "v", time.Minute)

	got, stale, ok := c.GetStale("key")
	require.True(t, ok)
	assert.False(t, stale)
	assert.Equal(t, "v", got)

	clock.Advance(2 * time.Minute)

	got, stale, ok = c.GetStale("key")
	require.True(t, ok)
	assert.True(t, stale)
	assert.Equal(t, "v", got)

	// GetStale does not evict; Len still reports the entry.
	assert.Equal(t, 1, c.Len())

	_, _, ok = c.GetStale("absent")
	assert.False(t, ok)
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d", j%8)
				c.Set(key, n, time.Minute)
				c.Get(key)
				if j%25 == 0 {
					c.SweepExpired()
				}
			}
		}(i)
	}
	wg.Wait()
}
