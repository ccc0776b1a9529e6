package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"asset_strength_backend/models"
)

// cacheEntry holds one computed record together with its lifetime. Entries
// are superseded on the next fetch after expiry rather than evicted.
type cacheEntry struct {
	record    *models.AssetRecord
	createdAt time.Time
	expiresAt time.Time
}

// DailyCache memoizes computed asset records per (symbol, MA period) key
// until the next daily refresh boundary. The keyspace is small and bounded
// by client behavior, so there is no capacity limit and no background
// eviction.
type DailyCache struct {
	mu       sync.Mutex
	entries  map[string]*cacheEntry
	keyLocks map[string]*sync.Mutex
	boundary *RefreshBoundary
	now      func() time.Time
}

// NewDailyCache creates an empty cache anchored to the given boundary
func NewDailyCache(boundary *RefreshBoundary) *DailyCache {
	return &DailyCache{
		entries:  make(map[string]*cacheEntry),
		keyLocks: make(map[string]*sync.Mutex),
		boundary: boundary,
		now:      time.Now,
	}
}

// CacheKey builds the canonical cache key for a symbol and MA period.
func CacheKey(symbol string, maPeriod int) string {
	return fmt.Sprintf("%s_%d", symbol, maPeriod)
}

// ParseCacheKey splits a cache key back into its symbol and MA period.
func ParseCacheKey(key string) (string, int, bool) {
	idx := strings.LastIndex(key, "_")
	if idx <= 0 {
		return "", 0, false
	}
	maPeriod, err := strconv.Atoi(key[idx+1:])
	if err != nil {
		return "", 0, false
	}
	return key[:idx], maPeriod, true
}

// keyLock returns the mutex guarding one key, creating it on first use.
// Key locks are never removed; the keyspace stays small.
func (c *DailyCache) keyLock(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.keyLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		c.keyLocks[key] = lock
	}
	return lock
}

// GetOrCompute returns the cached record for key when it is still fresh,
// otherwise runs computeFn and stores the result with an expiry anchored at
// the moment of the successful compute. The check-compute-store sequence
// holds a per-key lock, so concurrent requests for the same key share a
// single upstream fetch. A failed compute caches nothing.
func (c *DailyCache) GetOrCompute(key string, computeFn func() (*models.AssetRecord, error)) (*models.AssetRecord, error) {
	lock := c.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if entry, ok := c.lookup(key); ok {
		hoursLeft := int(entry.expiresAt.Sub(c.now()).Hours())
		log.Printf("Cache hit for %s (expires in %dh)", key, hoursLeft)
		return entry.record, nil
	}

	log.Printf("Fetching fresh data for %s", key)
	record, err := computeFn()
	if err != nil {
		return nil, err
	}

	now := c.now()
	expiresAt := now.Add(time.Duration(c.boundary.SecondsUntilNext(now)) * time.Second)

	c.mu.Lock()
	c.entries[key] = &cacheEntry{
		record:    record,
		createdAt: now,
		expiresAt: expiresAt,
	}
	c.mu.Unlock()

	return record, nil
}

// lookup returns the entry for key when present and not yet expired.
func (c *DailyCache) lookup(key string) (*cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		return nil, false
	}
	return entry, true
}

// Len returns the number of stored entries, expired ones included.
func (c *DailyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Keys returns the keys of all stored entries.
func (c *DailyCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys
}

// Clear unconditionally empties the cache. Idempotent.
func (c *DailyCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
	log.Println("Cache cleared")
}
