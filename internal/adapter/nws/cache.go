package nws

import (
	"context"
	"fmt"
	"sync"
)

// CachedPoints wraps a Client with an in-memory LRU cache over point-to-grid
// resolution. Grid assignments are static, so a hit saves one upstream round
// trip on every forecast command for a repeated location.
type CachedPoints struct {
	inner *Client
	cache *lruCache
}

// NewCachedPoints creates a cache decorator around a client.
func NewCachedPoints(inner *Client, maxEntries int) *CachedPoints {
	return &CachedPoints{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

// Point resolves a coordinate to its forecast grid, consulting the cache
// first. Coordinates are bucketed to four decimal places, matching the
// precision the API itself redirects to.
func (c *CachedPoints) Point(ctx context.Context, lat, lon float64) (GridPoint, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if gp, ok := c.cache.get(key); ok {
		return gp, nil
	}
	gp, err := c.inner.Point(ctx, lat, lon)
	if err != nil {
		return gp, err
	}
	// Only cache resolved grids so transient failures can be retried.
	if gp.ForecastURL != "" {
		c.cache.put(key, gp)
	}
	return gp, nil
}

// Forecast passes through to the underlying client.
func (c *CachedPoints) Forecast(ctx context.Context, gp GridPoint) ([]ForecastPeriod, error) {
	return c.inner.Forecast(ctx, gp)
}

// lruCache is a simple thread-safe LRU cache for grid points.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value GridPoint
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (GridPoint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return GridPoint{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value GridPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
