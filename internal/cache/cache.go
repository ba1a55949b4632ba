// Package cache provides the process-wide TTL cache the data sources sit
// behind. It is deliberately framework-free: {value, fetchedAt} plus a
// loader, so the fallback policy and cache behavior stay testable on their
// own.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// TTL caches a single loaded value for a wall-clock window. It is populated
// on first Get or after expiry, invalidated purely by elapsed time, and never
// explicitly cleared. Concurrent misses collapse into one loader call.
type TTL[T any] struct {
	ttl  time.Duration
	load func(context.Context) (T, error)
	now  func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	value     T
	fetchedAt time.Time
	has       bool
}

// New builds a TTL cache around load. A non-positive ttl means every Get
// invokes the loader (useful to disable caching in tools).
func New[T any](ttl time.Duration, load func(context.Context) (T, error)) *TTL[T] {
	return &TTL[T]{
		ttl:  ttl,
		load: load,
		now:  time.Now,
	}
}

// Get returns the cached value while it is fresh, otherwise re-invokes the
// loader and updates the timestamp. Loader errors pass through uncached.
func (c *TTL[T]) Get(ctx context.Context) (T, error) {
	if v, ok := c.fresh(); ok {
		return v, nil
	}

	// The key is constant: the cache is global state with no
	// parameterization, one value per process.
	v, err, _ := c.group.Do("load", func() (any, error) {
		// A concurrent caller may have refilled while we waited.
		if v, ok := c.fresh(); ok {
			return v, nil
		}
		val, err := c.load(ctx)
		if err != nil {
			return val, err
		}
		c.mu.Lock()
		c.value = val
		c.fetchedAt = c.now()
		c.has = true
		c.mu.Unlock()
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (c *TTL[T]) fresh() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.has && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.value, true
	}
	var zero T
	return zero, false
}
