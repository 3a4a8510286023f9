// Package scancache holds completed scan results keyed by query and scope so
// a repeated search within the TTL is served without touching any
// marketplace. Identical inputs inside the window return identical outputs.
package scancache

import (
	"strings"
	"sync"
	"time"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// Entry is the cached outcome of one scan: the assets plus which tier of the
// cascade produced them.
type Entry struct {
	Assets []asset.Asset `json:"assets"`
	Tier   string        `json:"tier"`
}

type record struct {
	entry   Entry
	addedAt time.Time
}

// Cache is a TTL-bounded, size-bounded scan cache. When the size cap is hit
// the oldest entry by insertion time is evicted first.
type Cache struct {
	mu      sync.Mutex
	entries map[string]record
	ttl     time.Duration
	max     int
	now     func() time.Time
}

// New builds a cache with the given TTL and entry cap. max < 1 disables the
// size bound.
func New(ttl time.Duration, max int) *Cache {
	return &Cache{
		entries: make(map[string]record),
		ttl:     ttl,
		max:     max,
		now:     time.Now,
	}
}

// Key canonicalizes a query and scope into the cache key. Queries differing
// only in case or surrounding space hit the same entry.
func Key(query, scope string) string {
	return strings.ToLower(strings.TrimSpace(query)) + "|" + strings.ToLower(strings.TrimSpace(scope))
}

// Get returns the entry for key if present and not expired.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	if c.now().Sub(rec.addedAt) > c.ttl {
		delete(c.entries, key)
		return Entry{}, false
	}
	return rec.entry, true
}

// Put stores the entry, evicting the oldest entries if the cache is full.
func (c *Cache) Put(key string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.max > 0 {
		for len(c.entries) >= c.max {
			c.evictOldestLocked()
		}
	}
	c.entries[key] = record{entry: e, addedAt: c.now()}
}

func (c *Cache) evictOldestLocked() {
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
	if !first {
		delete(c.entries, oldestKey)
	}
}

// Len reports the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
