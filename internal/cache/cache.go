// Package cache provides the key/value store used for leaderboard aggregates
// and revoked token ids. Values are stored as JSON.
package cache

import (
	"context"
	"log"
	"time"
)

// Cache is a JSON value store with per-key expiry. A zero ttl means no expiry.
type Cache interface {
	// Get decodes the value under key into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// GetOrSet returns the cached value under key, computing and storing it on a miss.
// Cache failures degrade to calling compute; they are logged, not returned.
func GetOrSet[T any](ctx context.Context, c Cache, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	var value T
	found, err := c.Get(ctx, key, &value)
	if err != nil {
		log.Printf("[cache] get %s: %v", key, err)
	}
	if found && err == nil {
		return value, nil
	}

	value, err = compute(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		log.Printf("[cache] set %s: %v", key, err)
	}
	return value, nil
}
