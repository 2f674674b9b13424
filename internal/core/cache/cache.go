// Package cache implements read-through TTL caching for upstream payloads.
//
// A Cell holds one value per upstream; Keyed holds one value per request
// variant (query string, room id). Reads within the TTL return the cached
// value without touching the upstream. A stale read runs the fetch function
// and overwrites the slot on success. Fetch failures propagate to the caller
// and leave the slot untouched, so a later read retries the upstream.
package cache

import (
	"context"
	"sync"
	"time"

	"homeboard/internal/platform/metrics"
)

// now is a seam for tests
var now = time.Now

// FetchFunc loads a fresh value from the upstream
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Cell is a single-slot read-through cache
type Cell[T any] struct {
	mu        sync.Mutex
	module    string
	ttl       time.Duration
	value     T
	fetchedAt time.Time
}

// NewCell builds a cell for one upstream; module labels the metrics
func NewCell[T any](module string, ttl time.Duration) *Cell[T] {
	return &Cell[T]{module: module, ttl: ttl}
}

// TTL reports the freshness window the cell was built with
func (c *Cell[T]) TTL() time.Duration { return c.ttl }

// Get returns the cached value when fresh, otherwise fetches and stores.
// Concurrent stale reads each run their own fetch; last write wins.
func (c *Cell[T]) Get(ctx context.Context, fetch FetchFunc[T]) (T, error) {
	c.mu.Lock()
	if !c.fetchedAt.IsZero() && now().Sub(c.fetchedAt) < c.ttl {
		v := c.value
		c.mu.Unlock()
		metrics.CacheHits.WithLabelValues(c.module).Inc()
		return v, nil
	}
	c.mu.Unlock()

	metrics.CacheMisses.WithLabelValues(c.module).Inc()
	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.mu.Lock()
	c.value = v
	c.fetchedAt = now()
	c.mu.Unlock()
	return v, nil
}

// GetStale is like Get but serves the last good value when the fetch fails
// and a previous fetch ever succeeded
func (c *Cell[T]) GetStale(ctx context.Context, fetch FetchFunc[T]) (T, error) {
	v, err := c.Get(ctx, fetch)
	if err == nil {
		return v, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetchedAt.IsZero() {
		var zero T
		return zero, err
	}
	return c.value, nil
}

// Invalidate marks the slot stale so the next read refetches
func (c *Cell[T]) Invalidate() {
	c.mu.Lock()
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}

// Keyed is a read-through cache with one slot per request variant
type Keyed[T any] struct {
	mu     sync.Mutex
	module string
	ttl    time.Duration
	slots  map[string]keyedSlot[T]
}

type keyedSlot[T any] struct {
	value     T
	fetchedAt time.Time
}

// NewKeyed builds a keyed cache; module labels the metrics
func NewKeyed[T any](module string, ttl time.Duration) *Keyed[T] {
	return &Keyed[T]{module: module, ttl: ttl, slots: make(map[string]keyedSlot[T])}
}

// Get returns the fresh slot for key, fetching and storing when stale
func (k *Keyed[T]) Get(ctx context.Context, key string, fetch FetchFunc[T]) (T, error) {
	k.mu.Lock()
	s, ok := k.slots[key]
	if ok && now().Sub(s.fetchedAt) < k.ttl {
		k.mu.Unlock()
		metrics.CacheHits.WithLabelValues(k.module).Inc()
		return s.value, nil
	}
	k.mu.Unlock()

	metrics.CacheMisses.WithLabelValues(k.module).Inc()
	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	k.mu.Lock()
	k.slots[key] = keyedSlot[T]{value: v, fetchedAt: now()}
	k.mu.Unlock()
	return v, nil
}

// Invalidate drops every slot; the next read per key refetches
func (k *Keyed[T]) Invalidate() {
	k.mu.Lock()
	k.slots = make(map[string]keyedSlot[T])
	k.mu.Unlock()
}

// InvalidateKey drops a single slot
func (k *Keyed[T]) InvalidateKey(key string) {
	k.mu.Lock()
	delete(k.slots, key)
	k.mu.Unlock()
}
