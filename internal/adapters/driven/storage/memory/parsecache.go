package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driven"
)

// Ensure ParseCache implements the interface.
var _ driven.ParseCache = (*ParseCache)(nil)

// DefaultMaxEntries bounds a parse cache created with NewParseCache.
const DefaultMaxEntries = 1024

type cacheEntry struct {
	parsed    domain.ParsedCV
	storedAt  time.Time
	expiresAt time.Time
}

// ParseCache is an in-memory implementation of driven.ParseCache.
// Entries expire after the configured TTL; a zero TTL never expires.
// Expired entries are swept on every Set, and once maxEntries is reached
// the oldest entry is evicted.
type ParseCache struct {
	mu         sync.RWMutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]cacheEntry
	now        func() time.Time
}

// NewParseCache creates a new in-memory parse cache holding at most
// DefaultMaxEntries results.
func NewParseCache(ttl time.Duration) *ParseCache {
	return NewParseCacheWithLimit(ttl, DefaultMaxEntries)
}

// NewParseCacheWithLimit creates a parse cache holding at most maxEntries
// results. A non-positive limit falls back to DefaultMaxEntries.
func NewParseCacheWithLimit(ttl time.Duration, maxEntries int) *ParseCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &ParseCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]cacheEntry),
		now:        time.Now,
	}
}

// Get returns the cached result and true on a hit.
func (c *ParseCache) Get(_ context.Context, key string) (*domain.ParsedCV, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}

	parsed := entry.parsed
	return &parsed, true, nil
}

// Set stores a result.
func (c *ParseCache) Set(_ context.Context, key string, parsed *domain.ParsedCV) error {
	if parsed == nil {
		return domain.ErrInvalidInput
	}

	now := c.now()
	entry := cacheEntry{parsed: *parsed, storedAt: now}
	if c.ttl > 0 {
		entry.expiresAt = now.Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked(now)
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = entry
	return nil
}

// sweepLocked drops expired entries. Caller must hold mu.
func (c *ParseCache) sweepLocked(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// evictOldestLocked drops the least recently stored entry. Caller must hold mu.
func (c *ParseCache) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for key, entry := range c.entries {
		if !found || entry.storedAt.Before(oldestAt) {
			oldestKey, oldestAt, found = key, entry.storedAt, true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}

// Len returns the number of entries, including expired ones not yet swept.
func (c *ParseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
