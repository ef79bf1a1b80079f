package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/platform/obs"
)

// SQLTravelTimeCache is a Postgres-backed cache for origin->destination
// drive times, used when the service runs against a shared database.
type SQLTravelTimeCache struct {
	DB *sql.DB
}

func NewSQLTravelTimeCache(db *sql.DB) *SQLTravelTimeCache {
	return &SQLTravelTimeCache{DB: db}
}

// Fetch the cached drive time for one origin/destination pair.
func (s *SQLTravelTimeCache) Get(ctx context.Context, origin, destination string) (_ int, _ bool, err error) {
	defer obs.Time(ctx, "traveltime.cache.Get")(&err)

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
	WHERE origin = $1
		AND destination = $2;
	`

	var minutes int
	err = s.DB.QueryRowContext(ctx, q, origin, destination).Scan(&minutes)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get travel time cache: query travel_time_cache table: %w", err)
	}

	return minutes, true, nil
}

// Store the drive time for one origin/destination pair.
func (s *SQLTravelTimeCache) Put(ctx context.Context, origin, destination string, minutes int) (err error) {
	defer obs.Time(ctx, "traveltime.cache.Put")(&err)

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
	INSERT INTO travel_time_cache (origin, destination, duration_minutes)
	VALUES ($1, $2, $3)
	ON CONFLICT (origin, destination) DO UPDATE
	SET duration_minutes = EXCLUDED.duration_minutes;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, minutes); err != nil {
		return fmt.Errorf("insert travel time cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
