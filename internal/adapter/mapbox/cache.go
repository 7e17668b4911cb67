package mapbox

import (
	"context"
	"fmt"
	"sync"

	"github.com/couchcryptid/pfas-riskscope/internal/domain"
	"github.com/couchcryptid/pfas-riskscope/internal/observability"
)

// CachedLocator wraps a RegionLocator with an in-memory LRU cache.
// Coordinates are keyed at three-decimal precision (~100 m); siting
// analyses poke around the same parcels repeatedly, so the hit rate is
// high and a state boundary within 100 m is noise at screening level.
type CachedLocator struct {
	inner   domain.RegionLocator
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedLocator creates a cache decorator around a region locator.
func NewCachedLocator(inner domain.RegionLocator, maxEntries int, metrics *observability.Metrics) *CachedLocator {
	return &CachedLocator{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedLocator) LocateRegion(ctx context.Context, lat, lon float64) (domain.Region, error) {
	key := fmt.Sprintf("%.3f,%.3f", lat, lon)
	if region, ok := c.cache.get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return region, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	region, err := c.inner.LocateRegion(ctx, lat, lon)
	if err != nil {
		return region, err
	}
	// Only cache resolved regions so transient failures can be retried.
	if region != "" {
		c.cache.put(key, region)
	}
	return region, nil
}

// lruCache is a simple thread-safe LRU cache for region lookups.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.Region
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.Region, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.Region) {
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
