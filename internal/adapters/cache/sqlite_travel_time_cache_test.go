package cache

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newSqliteCache(t *testing.T) *SqliteTravelTimeCache {
	t.Helper()

	store, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.Exec(`
	CREATE TABLE travel_time_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`)
	require.NoError(t, err)

	return NewSqliteTravelTimeCache(store)
}

func TestSqliteTravelTimeCacheRoundTrip(t *testing.T) {
	c := newSqliteCache(t)
	ctx := context.Background()

	_, hit, err := c.Get(ctx, "A", "B")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Put(ctx, "A", "B", 14))

	minutes, hit, err := c.Get(ctx, "A", "B")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, 14, minutes)
}

func TestSqliteTravelTimeCacheReplaces(t *testing.T) {
	c := newSqliteCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "A", "B", 14))
	require.NoError(t, c.Put(ctx, "A", "B", 9))

	minutes, hit, err := c.Get(ctx, "A", "B")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, 9, minutes)
}

func TestSqliteTravelTimeCacheRejectsBadInput(t *testing.T) {
	c := newSqliteCache(t)
	ctx := context.Background()

	_, _, err := c.Get(ctx, "", "B")
	assert.Error(t, err)

	assert.Error(t, c.Put(ctx, " ", "B", 5))
	assert.Error(t, c.Put(ctx, "A", "B", -2))
}
