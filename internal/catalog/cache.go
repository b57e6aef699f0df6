package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/minjae-ko/siganpyo/internal/lecture"
)

// Cache deduplicates and memoizes catalog fetches per resource name.
// Concurrent callers for the same resource share one in-flight request,
// and a completed result is served for the rest of the session without
// re-issuing the call. Failed fetches are not cached, so a later
// explicit refresh can retry.
//
// The cache is an explicit object injected into whoever owns the catalog
// lifecycle; there is no package-level state.
type Cache struct {
	fetcher Fetcher
	group   singleflight.Group

	mu      sync.Mutex
	results map[string][]*lecture.Lecture
}

// NewCache creates a cache in front of a fetcher.
func NewCache(f Fetcher) *Cache {
	return &Cache{
		fetcher: f,
		results: make(map[string][]*lecture.Lecture),
	}
}

// Get returns the lecture list for a resource, fetching it at most once.
func (c *Cache) Get(ctx context.Context, resource string) ([]*lecture.Lecture, error) {
	c.mu.Lock()
	if lectures, ok := c.results[resource]; ok {
		c.mu.Unlock()
		return lectures, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(resource, func() (any, error) {
		lectures, err := c.fetcher.Fetch(ctx, resource)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.results[resource] = lectures
		c.mu.Unlock()
		return lectures, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*lecture.Lecture), nil
}

// Invalidate drops the cached result for a resource, forcing the next
// Get to fetch again. Used by the explicit refresh command.
func (c *Cache) Invalidate(resource string) {
	c.mu.Lock()
	delete(c.results, resource)
	c.mu.Unlock()
}

// Put primes the cache with a known result, e.g. a snapshot loaded from
// disk when the network is unavailable.
func (c *Cache) Put(resource string, lectures []*lecture.Lecture) {
	c.mu.Lock()
	c.results[resource] = lectures
	c.mu.Unlock()
}
