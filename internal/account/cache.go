package account

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/GuildPoints_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// Cache defaults
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 5 * time.Minute
)

// CacheConfig sizes the account read cache. A zero Size disables caching.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns the default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: DefaultCacheSize, TTL: DefaultCacheTTL}
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

type cachedAccountEntry struct {
	Version string
	Account *domain.Account
}

// accountCache holds copies of persisted accounts. Entries are replaced after
// every successful write and dropped after every failed one.
type accountCache struct {
	lru    *expirable.LRU[string, *cachedAccountEntry]
	hits   atomic.Int64
	misses atomic.Int64
}

func newAccountCache(cfg CacheConfig) *accountCache {
	if cfg.Size <= 0 {
		return nil
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCacheTTL
	}
	return &accountCache{
		lru: expirable.NewLRU[string, *cachedAccountEntry](cfg.Size, nil, cfg.TTL),
	}
}

// Get returns a private copy of the cached account.
func (c *accountCache) Get(userID string) (*domain.Account, bool) {
	if c == nil {
		return nil, false
	}
	entry, found := c.lru.Get(userID)
	if !found || entry.Version != CacheSchemaVersion {
		if found {
			c.lru.Remove(userID)
		}
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return entry.Account.Clone(), true
}

func (c *accountCache) Set(acct *domain.Account) {
	if c == nil {
		return
	}
	c.lru.Add(acct.UserID, &cachedAccountEntry{
		Version: CacheSchemaVersion,
		Account: acct.Clone(),
	})
}

func (c *accountCache) Invalidate(userID string) {
	if c == nil {
		return
	}
	c.lru.Remove(userID)
}

func (c *accountCache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
