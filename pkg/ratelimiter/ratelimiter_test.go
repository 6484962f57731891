package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrgen/pkg/ratelimiter"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
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

var testConfig = ratelimiter.Config{
	Capacity:       5,
	RefillRate:     2,
	RefillInterval: time.Second,
}

// storeFactory builds a fresh store driven by the given clock.
type storeFactory func(t *testing.T, clock *fakeClock) ratelimiter.Store

func memoryFactory(t *testing.T, clock *fakeClock) ratelimiter.Store {
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clock.Now), ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	return store
}

// runStoreSuite checks the bucket semantics every Store must share.
func runStoreSuite(t *testing.T, factory storeFactory) {
	ctx := context.Background()

	t.Run("burst up to capacity then reject", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		b, err := ratelimiter.NewBucket(factory(t, clock), testConfig)
		require.NoError(t, err)

		for i := range testConfig.Capacity {
			res, err := b.Allow(ctx, "ip")
			require.NoError(t, err)
			assert.True(t, res.Allowed())
			assert.Equal(t, testConfig.Capacity-i-1, res.Remaining)
			assert.Equal(t, testConfig.Capacity, res.Limit)
		}

		res, err := b.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.False(t, res.Allowed())
		assert.Equal(t, -1, res.Remaining)
	})

	t.Run("rejected requests do not drain the bucket", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		b, err := ratelimiter.NewBucket(factory(t, clock), testConfig)
		require.NoError(t, err)

		_, err = b.AllowN(ctx, "ip", testConfig.Capacity)
		require.NoError(t, err)
		for range 10 {
			res, err := b.Allow(ctx, "ip")
			require.NoError(t, err)
			require.False(t, res.Allowed())
		}

		clock.Advance(testConfig.RefillInterval)
		res, err := b.Status(ctx, "ip")
		require.NoError(t, err)
		assert.Equal(t, testConfig.RefillRate, res.Remaining)
	})

	t.Run("refill caps at capacity", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		b, err := ratelimiter.NewBucket(factory(t, clock), testConfig)
		require.NoError(t, err)

		_, err = b.AllowN(ctx, "ip", 3)
		require.NoError(t, err)

		clock.Advance(time.Hour)
		res, err := b.Status(ctx, "ip")
		require.NoError(t, err)
		assert.Equal(t, testConfig.Capacity, res.Remaining)
	})

	t.Run("reset at points to next refill", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		b, err := ratelimiter.NewBucket(factory(t, clock), testConfig)
		require.NoError(t, err)

		res, err := b.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.True(t, res.ResetAt.Equal(clock.Now().Add(testConfig.RefillInterval)), res.ResetAt)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		b, err := ratelimiter.NewBucket(factory(t, clock), testConfig)
		require.NoError(t, err)

		_, err = b.AllowN(ctx, "a", testConfig.Capacity)
		require.NoError(t, err)

		res, err := b.Allow(ctx, "b")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})

	t.Run("reset restores capacity", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		b, err := ratelimiter.NewBucket(factory(t, clock), testConfig)
		require.NoError(t, err)

		_, err = b.AllowN(ctx, "ip", testConfig.Capacity)
		require.NoError(t, err)
		require.NoError(t, b.Reset(ctx, "ip"))

		res, err := b.Status(ctx, "ip")
		require.NoError(t, err)
		assert.Equal(t, testConfig.Capacity, res.Remaining)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	runStoreSuite(t, memoryFactory)
}

func TestMemoryStoreConcurrent(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	b, err := ratelimiter.NewBucket(memoryFactory(t, clock), ratelimiter.Config{
		Capacity:       100,
		RefillRate:     1,
		RefillInterval: time.Hour,
	})
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 250 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := b.Allow(context.Background(), "shared")
			if err == nil && res.Allowed() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowed)
}

func TestNewBucketValidation(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	defer store.Close()

	for _, cfg := range []ratelimiter.Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1, RefillInterval: 0},
	} {
		_, err := ratelimiter.NewBucket(store, cfg)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	}

	b, err := ratelimiter.NewBucket(store, testConfig)
	require.NoError(t, err)
	_, err = b.AllowN(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
}

func TestResult(t *testing.T) {
	t.Parallel()

	ok := &ratelimiter.Result{Remaining: 0, ResetAt: time.Now().Add(time.Minute)}
	assert.True(t, ok.Allowed())
	assert.Zero(t, ok.RetryAfter())

	denied := &ratelimiter.Result{Remaining: -1, ResetAt: time.Now().Add(time.Minute)}
	assert.False(t, denied.Allowed())
	assert.InDelta(t, time.Minute.Seconds(), denied.RetryAfter().Seconds(), 1)

	past := &ratelimiter.Result{Remaining: -1, ResetAt: time.Now().Add(-time.Minute)}
	assert.Zero(t, past.RetryAfter())
}
