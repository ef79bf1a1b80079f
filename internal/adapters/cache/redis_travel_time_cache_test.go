package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*RedisTravelTimeCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisTravelTimeCache(client, ttl), mr
}

func TestRedisTravelTimeCacheRoundTrip(t *testing.T) {
	c, _ := newRedisCache(t, time.Hour)
	ctx := context.Background()

	_, hit, err := c.Get(ctx, "A", "B")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Put(ctx, "A", "B", 22))

	minutes, hit, err := c.Get(ctx, "A", "B")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, 22, minutes)

	// Directional: the reverse pair is a separate key.
	_, hit, err = c.Get(ctx, "B", "A")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisTravelTimeCacheReplaces(t *testing.T) {
	c, _ := newRedisCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "A", "B", 22))
	require.NoError(t, c.Put(ctx, "A", "B", 31))

	minutes, hit, err := c.Get(ctx, "A", "B")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, 31, minutes)
}

func TestRedisTravelTimeCacheEntriesExpire(t *testing.T) {
	c, mr := newRedisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "A", "B", 22))

	mr.FastForward(2 * time.Minute)

	_, hit, err := c.Get(ctx, "A", "B")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisTravelTimeCacheRejectsBadInput(t *testing.T) {
	c, _ := newRedisCache(t, time.Hour)
	ctx := context.Background()

	_, _, err := c.Get(ctx, "", "B")
	assert.Error(t, err)

	assert.Error(t, c.Put(ctx, "A", "", 5))
	assert.Error(t, c.Put(ctx, "A", "B", -1))
}
