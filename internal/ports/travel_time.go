package ports

import "context"

// Contract for estimating door-to-door drive time between two
// street addresses.
type TravelTimeEstimator interface {
	// EstimateMinutes returns the drive time in whole minutes.
	//
	// ok=false means the estimate is unavailable: empty input, network
	// failure, rate limit, denied credential, or no drivable route.
	// Callers must treat ok=false as infeasible, never as feasible by
	// default; an unreachable upstream must not approve an assignment
	// that could require impossible travel.
	EstimateMinutes(ctx context.Context, origin string, destination string) (minutes int, ok bool)
}
