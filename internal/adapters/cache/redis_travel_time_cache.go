package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const travelTimeKeyPrefix = "traveltime:"

// RedisTravelTimeCache keeps drive times in Redis with a TTL, for
// deployments that share one cache across several service instances.
// Drive times drift with traffic patterns, so entries expire instead
// of living forever like the SQL caches.
type RedisTravelTimeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTravelTimeCache(client *redis.Client, ttl time.Duration) *RedisTravelTimeCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisTravelTimeCache{client: client, ttl: ttl}
}

func travelTimeKey(origin, destination string) string {
	return travelTimeKeyPrefix + origin + "|" + destination
}

// Fetch the cached drive time for one origin/destination pair.
func (r *RedisTravelTimeCache) Get(ctx context.Context, origin, destination string) (int, bool, error) {
	if r.client == nil {
		return 0, false, errors.New("travel time cache: redis client is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return 0, false, errors.New("get travel time cache: origin and destination must not be empty")
	}

	val, err := r.client.Get(ctx, travelTimeKey(origin, destination)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get travel time cache: redis get: %w", err)
	}

	minutes, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("get travel time cache: parse %q: %w", val, err)
	}

	return minutes, true, nil
}

// Store the drive time for one origin/destination pair.
func (r *RedisTravelTimeCache) Put(ctx context.Context, origin, destination string, minutes int) error {
	if r.client == nil {
		return errors.New("travel time cache: redis client is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return errors.New("insert travel time cache: origin and destination must not be empty")
	}
	if minutes < 0 {
		return fmt.Errorf("insert travel time cache: negative minutes %d", minutes)
	}

	key := travelTimeKey(origin, destination)
	if err := r.client.Set(ctx, key, strconv.Itoa(minutes), r.ttl).Err(); err != nil {
		return fmt.Errorf("insert travel time cache %q -> %q: redis set: %w", origin, destination, err)
	}

	return nil
}
