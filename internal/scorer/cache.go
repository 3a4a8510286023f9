package scorer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// CacheKey hashes the facts that determine a score. Two listings with the
// same type, marketplace, user count, and normalized name are the same asset
// as far as analysis goes, whatever their ids or urls say.
func CacheKey(a asset.Asset) string {
	name := strings.ToLower(strings.TrimSpace(a.Name))
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%s", a.Type, a.Marketplace, a.UserCount, name)))
	return hex.EncodeToString(h[:16])
}

type cacheRecord struct {
	score   Score
	addedAt time.Time
}

// Cache holds computed scores for a TTL window so repeated analyze requests
// for the same asset are fast and, more importantly, consistent: the first
// computation wins for the whole window even though the provider is not
// deterministic.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheRecord
	ttl     time.Duration
	max     int
	now     func() time.Time
}

// NewCache builds an analysis cache with the given TTL and entry cap.
func NewCache(ttl time.Duration, max int) *Cache {
	return &Cache{
		entries: make(map[string]cacheRecord),
		ttl:     ttl,
		max:     max,
		now:     time.Now,
	}
}

// Get returns the cached score for key if present and unexpired. Expiry is
// checked lazily on read.
func (c *Cache) Get(key string) (Score, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.entries[key]
	if !ok {
		return Score{}, false
	}
	if c.now().Sub(rec.addedAt) > c.ttl {
		delete(c.entries, key)
		return Score{}, false
	}
	return rec.score, true
}

// Put stores a score, evicting oldest-first when the cap is exceeded.
func (c *Cache) Put(key string, s Score) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.max > 0 {
		for len(c.entries) >= c.max {
			var (
				oldestKey string
				oldestAt  time.Time
				first     = true
			)
			for k, rec := range c.entries {
				if first || rec.addedAt.Before(oldestAt) {
					oldestKey, oldestAt = k, rec.addedAt
					first = false
				}
			}
			delete(c.entries, oldestKey)
		}
	}
	c.entries[key] = cacheRecord{score: s, addedAt: c.now()}
}

// Len reports the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
