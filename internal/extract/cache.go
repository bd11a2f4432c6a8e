package extract

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"
)

// cacheEntry represents a cached extraction result.
type cacheEntry struct {
	expiry   time.Time
	response FrameResponse
}

// frameCache provides thread-safe caching for extraction results. The same
// drawing or callout text re-submitted within the TTL reuses the previous
// candidate instead of paying for another provider call.
type frameCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

// newFrameCache creates a new cache with the specified TTL.
func newFrameCache(ttl time.Duration) *frameCache {
	if ttl == 0 {
		ttl = 15 * time.Minute // Default TTL
	}

	cache := &frameCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

// cacheKey hashes the complete extraction input, hints included.
func cacheKey(input ExtractionInput) string {
	h := sha256.New()
	fmt.Fprintf(h, "image:%s\ntext:%s\n", input.ImageURL, input.Text)

	keys := make([]string, 0, len(input.Hints))
	for k := range input.Hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "hint:%s=%s\n", k, input.Hints[k])
	}

	return fmt.Sprintf("%x", h.Sum(nil))
}

// get retrieves a result from the cache if it exists and hasn't expired.
func (c *frameCache) get(key string) (FrameResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return FrameResponse{}, false
	}

	if time.Now().After(entry.expiry) {
		return FrameResponse{}, false
	}

	return entry.response, true
}

// set stores a result in the cache.
func (c *frameCache) set(key string, response FrameResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		response: response,
		expiry:   time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *frameCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// size returns the number of entries in the cache.
func (c *frameCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine.
func (c *frameCache) Close() {
	close(c.stopCh)
}
