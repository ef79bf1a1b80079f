package main

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	store, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestInitAndSeed(t *testing.T) {
	store := newMemoryDB(t)

	seed := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(seed, []byte(`{
		"categories": [{"category_id": 1, "name": "Lawncare"}],
		"time_slots": [{"slot_id": 1, "label": "7:30-9:30", "ordinal": 0}],
		"employees": [{"employee_id": 1, "name": "Ada", "home_address": "H1", "category_id": 1}],
		"bookings": [],
		"job_assignments": []
	}`), 0o600))

	require.NoError(t, initAndSeed(store, seed))

	var employees int
	require.NoError(t, store.QueryRow(`SELECT COUNT(*) FROM employees`).Scan(&employees))
	assert.Equal(t, 1, employees)
}

func TestInitAndSeedWithoutSeedFileOnlyBuildsSchema(t *testing.T) {
	store := newMemoryDB(t)

	require.NoError(t, initAndSeed(store, ""))

	var employees int
	require.NoError(t, store.QueryRow(`SELECT COUNT(*) FROM employees`).Scan(&employees))
	assert.Zero(t, employees)
}

func TestInitAndSeedReturnsSeedErrors(t *testing.T) {
	store := newMemoryDB(t)

	err := initAndSeed(store, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
