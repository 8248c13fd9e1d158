package cache

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagCount struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(16)

	require.NoError(t, c.Set(ctx, "popular_tags", []tagCount{{"go", 3}, {"sql", 1}}, time.Minute))

	var got []tagCount
	found, err := c.Get(ctx, "popular_tags", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []tagCount{{"go", 3}, {"sql", 1}}, got)

	found, err = c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(16)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", 1, 300*time.Second))
	require.NoError(t, c.Set(ctx, "forever", 2, 0))

	now = now.Add(299 * time.Second)
	var v int
	found, _ := c.Get(ctx, "k", &v)
	assert.True(t, found)

	now = now.Add(time.Second)
	found, _ = c.Get(ctx, "k", &v)
	assert.False(t, found, "entry should expire at its ttl")

	now = now.Add(24 * time.Hour)
	found, _ = c.Get(ctx, "forever", &v)
	assert.True(t, found)
	assert.Equal(t, 2, v)
}

func TestMemoryCache_DeleteAndEviction(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)

	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))
	require.NoError(t, c.Set(ctx, "c", 3, 0))
	assert.Equal(t, 2, c.Len())

	var v int
	found, _ := c.Get(ctx, "a", &v)
	assert.False(t, found, "least recently used key should be evicted")

	require.NoError(t, c.Delete(ctx, "b"))
	found, _ = c.Get(ctx, "b", &v)
	assert.False(t, found)
}

func TestRevocationStore_NeverEvictsBySize(t *testing.T) {
	ctx := context.Background()
	c := NewRevocationStore(time.Hour)

	require.NoError(t, c.Set(ctx, "revoked_token:first", true, time.Hour))
	for i := 0; i < 5000; i++ {
		require.NoError(t, c.Set(ctx, "revoked_token:"+strconv.Itoa(i), true, time.Hour))
	}

	var revoked bool
	found, err := c.Get(ctx, "revoked_token:first", &revoked)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 5001, c.Len())
}

func TestRevocationStore_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewRevocationStore(time.Hour)
	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "revoked_token:a", true, time.Minute))
	now = now.Add(2 * time.Minute)

	var revoked bool
	found, err := c.Get(ctx, "revoked_token:a", &revoked)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetOrSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(16)
	calls := 0
	compute := func(context.Context) ([]string, error) {
		calls++
		return []string{"alice", "bob"}, nil
	}

	first, err := GetOrSet(ctx, c, "best_members", time.Minute, compute)
	require.NoError(t, err)
	second, err := GetOrSet(ctx, c, "best_members", time.Minute, compute)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestGetOrSet_ComputeError(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(16)
	boom := errors.New("boom")

	_, err := GetOrSet(ctx, c, "k", time.Minute, func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)

	var v int
	found, _ := c.Get(ctx, "k", &v)
	assert.False(t, found, "failed computations must not be cached")
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	c := NewRedisCache(client, "test:")
	require.NoError(t, c.Set(ctx, "popular_tags", []tagCount{{"go", 1}}, time.Minute))
	t.Cleanup(func() { _ = c.Delete(ctx, "popular_tags") })

	var got []tagCount
	found, err := c.Get(ctx, "popular_tags", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []tagCount{{"go", 1}}, got)

	require.NoError(t, c.Delete(ctx, "popular_tags"))
	found, err = c.Get(ctx, "popular_tags", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
