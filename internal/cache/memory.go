// Package cache provides the in-memory store backing the optional
// completion cache. Nothing in the core pipeline caches across runs;
// this only short-circuits repeated identical completion calls.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-memory TTL cache for string values
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates a memory cache with the given default TTL
func NewMemory(defaultTTL time.Duration, cleanupInterval time.Duration) *Memory {
	return &Memory{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache
func (c *Memory) Get(key string) (string, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(string), true
	}
	return "", false
}

// Set stores a value with the default TTL
func (c *Memory) Set(key string, value string) {
	c.cache.SetDefault(key, value)
}

// Clear removes all values
func (c *Memory) Clear() {
	c.cache.Flush()
}
