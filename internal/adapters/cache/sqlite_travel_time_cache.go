package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLite backed cache for origin->destination drive times. Keys are
// expected to be consistent (e.g., already normalized) by the caller.
type SqliteTravelTimeCache struct {
	DB *sql.DB
}

func NewSqliteTravelTimeCache(db *sql.DB) *SqliteTravelTimeCache {
	return &SqliteTravelTimeCache{DB: db}
}

// Fetch the cached drive time for one origin/destination pair.
func (s *SqliteTravelTimeCache) Get(ctx context.Context, origin, destination string) (int, bool, error) {
	if s.DB == nil {
		return 0, false, errors.New("travel time cache: db is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return 0, false, errors.New("get travel time cache: origin and destination must not be empty")
	}

	q := `
	SELECT duration_minutes
	FROM travel_time_cache
	WHERE origin = ?
		AND destination = ?;
	`

	var minutes int
	err := s.DB.QueryRowContext(ctx, q, origin, destination).Scan(&minutes)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get travel time cache: query travel_time_cache table: %w", err)
	}

	return minutes, true, nil
}

// Store the drive time for one origin/destination pair.
func (s *SqliteTravelTimeCache) Put(ctx context.Context, origin, destination string, minutes int) error {
	if s.DB == nil {
		return errors.New("travel time cache: db is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return errors.New("insert travel time cache: origin and destination must not be empty")
	}
	if minutes < 0 {
		return fmt.Errorf("insert travel time cache: negative minutes %d", minutes)
	}

	q := `
	INSERT OR REPLACE INTO travel_time_cache (
		origin,
		destination,
		duration_minutes
	)
	VALUES (?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, minutes); err != nil {
		return fmt.Errorf("insert travel time cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
