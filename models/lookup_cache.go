package models

import (
	"context"
	"sync"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

type cacheEntry struct {
	data    []byte // msgpack-encoded response
	expires time.Time
}

// LookupCache keeps recent backend answers in memory.
// Entries are stored encoded so every hit hands out a fresh copy.
type LookupCache struct {
	ttl        time.Duration
	maxEntries int

	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewLookupCache creates a cache holding at most maxEntries answers for ttl.
func NewLookupCache(ttl time.Duration, maxEntries int) *LookupCache {
	if maxEntries <= 0 {
		maxEntries = 500
	}
	return &LookupCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]cacheEntry),
		now:        time.Now,
	}
}

// get decodes the live entry for key into out.
func (c *LookupCache) get(key string, out any) bool {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && !c.now().Before(e.expires) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return false
	}
	if err := msgpack.Unmarshal(e.data, out); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to decode cached lookup"), "key", key)
		return false
	}
	return true
}

// put stores v under key, evicting expired entries first and the
// soonest-to-expire entry when still full.
func (c *LookupCache) put(key string, v any) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to encode lookup for cache"), "key", key)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.purgeLocked(now)
		if len(c.entries) >= c.maxEntries {
			var oldest string
			var oldestExp time.Time
			for k, e := range c.entries {
				if oldest == "" || e.expires.Before(oldestExp) {
					oldest, oldestExp = k, e.expires
				}
			}
			delete(c.entries, oldest)
		}
	}
	c.entries[key] = cacheEntry{data: data, expires: now.Add(c.ttl)}
}

// Purge drops expired entries and returns how many were removed.
func (c *LookupCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.purgeLocked(c.now())
}

func (c *LookupCache) purgeLocked(now time.Time) int {
	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, expired ones included.
func (c *LookupCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// StartPurger runs Purge periodically until stop is closed.
func (c *LookupCache) StartPurger(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := c.Purge(); n > 0 {
					logger.Debug("Purged expired lookups", "count", n)
				}
			case <-stop:
				return
			}
		}
	}()
}

// CachedBackend answers repeated lookups from a LookupCache and forwards
// the rest. Only successful answers are cached.
type CachedBackend struct {
	next  MovieBackend
	cache *LookupCache
}

var _ MovieBackend = (*CachedBackend)(nil)

// NewCachedBackend wraps next with cache.
func NewCachedBackend(next MovieBackend, cache *LookupCache) *CachedBackend {
	return &CachedBackend{next: next, cache: cache}
}

// Recommend implements MovieBackend.
func (b *CachedBackend) Recommend(ctx context.Context, movie string) (*RecommendResponse, error) {
	key := endpointRecommend + ":" + movie

	var cached RecommendResponse
	if b.cache.get(key, &cached) {
		LookupCacheResults.WithLabelValues(endpointRecommend, "hit").Inc()
		return &cached, nil
	}
	LookupCacheResults.WithLabelValues(endpointRecommend, "miss").Inc()

	resp, err := b.next.Recommend(ctx, movie)
	if err == nil && resp != nil && resp.SearchedMovie != nil {
		b.cache.put(key, resp)
	}
	return resp, err
}

// MoviesByGenre implements MovieBackend.
func (b *CachedBackend) MoviesByGenre(ctx context.Context, genre string) (*GenreResponse, error) {
	key := endpointGenre + ":" + genre

	var cached GenreResponse
	if b.cache.get(key, &cached) {
		LookupCacheResults.WithLabelValues(endpointGenre, "hit").Inc()
		if cached.Movies == nil {
			cached.Movies = []Movie{} // only listings were stored
		}
		return &cached, nil
	}
	LookupCacheResults.WithLabelValues(endpointGenre, "miss").Inc()

	resp, err := b.next.MoviesByGenre(ctx, genre)
	if err == nil && resp != nil && resp.Movies != nil {
		b.cache.put(key, resp)
	}
	return resp, err
}
