package chart

import (
	"sync"
	"time"
)

const cacheTTL = 60 * time.Second

type cacheEntry struct {
	createdAt time.Time
	image     []byte
}

// imageCache keeps rendered PNGs for a short while, keyed by range.
type imageCache struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]cacheEntry
	now func() time.Time
}

func newImageCache(ttl time.Duration) *imageCache {
	return &imageCache{ttl: ttl, m: map[string]cacheEntry{}, now: time.Now}
}

func (c *imageCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.m[key]; ok {
		if c.now().Before(entry.createdAt.Add(c.ttl)) {
			img := make([]byte, len(entry.image))
			copy(img, entry.image)
			return img, true
		}
		delete(c.m, key)
	}
	return nil, false
}

func (c *imageCache) set(key string, img []byte) {
	c.mu.Lock()
	c.m[key] = cacheEntry{createdAt: c.now(), image: img}
	c.mu.Unlock()
}

// purge drops every entry, used when the underlying series is reloaded.
func (c *imageCache) purge() {
	c.mu.Lock()
	c.m = map[string]cacheEntry{}
	c.mu.Unlock()
}
