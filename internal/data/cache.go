package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"geothermal-load/internal/load"
)

// CacheEntry is one parsed profile.
type CacheEntry struct {
	Columns   [][]float64
	ExpiresAt time.Time
}

// ProfileCache keeps parsed profile columns in memory so repeated uploads of the same
// file skip parsing. Entries expire after ttl.
type ProfileCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once
}

// NewProfileCache starts a cache with a background sweep of expired entries.
// A ttl <= 0 returns nil, which behaves as a disabled cache.
func NewProfileCache(ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		return nil
	}
	c := &ProfileCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		done:  make(chan struct{}),
	}
	go c.cleanup(sweepInterval(ttl))
	return c
}

func sweepInterval(ttl time.Duration) time.Duration {
	if ttl < 5*time.Minute {
		return ttl
	}
	return 5 * time.Minute
}

// Get returns cached columns if present and not expired.
func (c *ProfileCache) Get(key string) ([][]float64, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists || time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Columns, true
}

// Set stores columns under key.
func (c *ProfileCache) Set(key string, columns [][]float64) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Columns:   columns,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Len is the number of stored entries, expired or not.
func (c *ProfileCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries.
func (c *ProfileCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// Close stops the background sweep.
func (c *ProfileCache) Close() {
	if c == nil {
		return
	}
	c.once.Do(func() { close(c.done) })
}

func (c *ProfileCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.store {
				if now.After(entry.ExpiresAt) {
					delete(c.store, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// CacheKey derives a key from file content, layout and requested columns.
func CacheKey(content []byte, format load.ProfileFormat, columns ...int) string {
	h := sha256.New()
	h.Write(content)
	fmt.Fprintf(h, "|%t|%q|%q|%v", format.Header, format.Separator, format.DecimalSeparator, columns)
	return hex.EncodeToString(h.Sum(nil))
}
