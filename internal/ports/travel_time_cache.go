package ports

import "context"

// Persistent cache of origin->destination drive times. Keys are
// expected to be consistent (e.g., already normalized) by the caller.
type TravelTimeCache interface {
	// Get returns the cached minutes for one origin/destination pair.
	// ok=false with a nil error is a plain cache miss.
	Get(ctx context.Context, origin string, destination string) (minutes int, ok bool, err error)

	// Put stores the minutes for one origin/destination pair,
	// replacing any previous value.
	Put(ctx context.Context, origin string, destination string, minutes int) error
}
