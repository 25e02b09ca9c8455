package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"feeder-dispatch/internal/model"
)

// ResponseCache is a development-only in-memory cache for profile
// responses, enabled by setting PROFILE_CACHE=1. It avoids hammering
// the profile service while iterating on strategies locally.
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	profile *model.SolarProfile
	expires time.Time
}

var (
	cacheOnce sync.Once
	cache     *ResponseCache
)

// GetCache returns the process-wide response cache, or nil when caching
// is disabled.
func GetCache() *ResponseCache {
	cacheOnce.Do(func() {
		if os.Getenv("PROFILE_CACHE") != "1" {
			return
		}
		ttl := time.Hour
		if v := os.Getenv("PROFILE_CACHE_TTL"); v != "" {
			if parsed, err := time.ParseDuration(v); err == nil {
				ttl = parsed
			} else {
				log.Printf("[cache] invalid PROFILE_CACHE_TTL %q, using %v", v, ttl)
			}
		}
		cache = newResponseCache(ttl)
		log.Printf("[cache] profile response cache enabled (ttl=%v)", ttl)
	})
	return cache
}

func newResponseCache(ttl time.Duration) *ResponseCache {
	c := &ResponseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
	go c.cleanupLoop()
	return c
}

func (c *ResponseCache) Get(key string) (*model.SolarProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.profile, true
}

func (c *ResponseCache) Set(key string, profile *model.SolarProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{
		profile: profile,
		expires: time.Now().Add(c.ttl),
	}
}

func (c *ResponseCache) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		for key, entry := range c.entries {
			if now.After(entry.expires) {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
	}
}

func cacheKey(params QueryProfileParams) string {
	raw := fmt.Sprintf("%s|%s|%s|%g",
		params.StationID,
		params.StartTime.Format(time.RFC3339),
		params.EndTime.Format(time.RFC3339),
		params.DtHours,
	)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
