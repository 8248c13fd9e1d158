package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time // zero: never
}

// MemoryCache is an in-process bounded LRU with per-key expiry, used when
// Redis is not configured and in tests.
type MemoryCache struct {
	lru *expirable.LRU[string, memoryEntry]
	now func() time.Time
}

func NewMemoryCache(size int) *MemoryCache {
	if size <= 0 {
		size = 1024
	}
	return &MemoryCache{
		// ttl 0 disables the LRU-wide expiry, entries carry their own.
		lru: expirable.NewLRU[string, memoryEntry](size, nil, 0),
		now: time.Now,
	}
}

// NewRevocationStore returns an unbounded MemoryCache whose entries are
// dropped only by expiry, never by size. maxTTL caps every entry's lifetime
// and drives background cleanup.
func NewRevocationStore(maxTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		lru: expirable.NewLRU[string, memoryEntry](0, nil, maxTTL),
		now: time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return false, nil
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.lru.Remove(key)
		return false, nil
	}
	if err := json.Unmarshal(entry.raw, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	entry := memoryEntry{raw: raw}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.lru.Add(key, entry)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

func (c *MemoryCache) Len() int {
	return c.lru.Len()
}
