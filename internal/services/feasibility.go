package services

import (
	"context"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/domain"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/ports"
)

// MaxLegMinutes is the travel budget applied to each adjacent leg.
// The threshold is inclusive: a 30-minute leg is feasible, 31 is not.
// It is a fixed policy constant, not per-call configuration.
const MaxLegMinutes = 30

// RouteVerdict is the outcome of evaluating one employee against one
// candidate job.
type RouteVerdict struct {
	Feasible bool
	// DriveInMinutes is the inbound leg's drive time, set only when
	// Feasible is true.
	DriveInMinutes int
	// RouteOrigin is where the inbound leg starts: the latest earlier
	// same-day jobsite, or the employee's home address.
	RouteOrigin string
}

// EvaluateRoute decides whether inserting a candidate job at slotOrdinal
// keeps the employee's day drivable.
//
// itinerary must hold the employee's live same-day assignments in
// strictly increasing slot-ordinal order. Only the legs adjacent to the
// candidate (previous jobsite -> candidate, candidate -> next jobsite)
// are checked; the employee's day is never re-routed globally.
//
// An exact-slot conflict is a hard conflict decided with zero estimator
// calls. Either leg exceeding MaxLegMinutes, or any estimate the
// estimator cannot produce, makes the candidate infeasible.
func EvaluateRoute(
	ctx context.Context,
	estimator ports.TravelTimeEstimator,
	homeAddress string,
	itinerary []domain.JobAssignment,
	slotOrdinal int,
	candidateAddress string,
) RouteVerdict {
	departure := homeAddress
	nextJobsite := ""
	haveNext := false

	for _, job := range itinerary {
		if job.SlotOrdinal == slotOrdinal {
			return RouteVerdict{}
		}
		if job.SlotOrdinal < slotOrdinal {
			// Ordinal order makes this the latest earlier job so far.
			departure = job.JobsiteAddress
			continue
		}
		if !haveNext {
			nextJobsite = job.JobsiteAddress
			haveNext = true
		}
	}

	driveIn, ok := estimator.EstimateMinutes(ctx, departure, candidateAddress)
	if !ok || driveIn > MaxLegMinutes {
		return RouteVerdict{}
	}

	if haveNext {
		driveOut, ok := estimator.EstimateMinutes(ctx, candidateAddress, nextJobsite)
		if !ok || driveOut > MaxLegMinutes {
			return RouteVerdict{}
		}
	}

	return RouteVerdict{
		Feasible:       true,
		DriveInMinutes: driveIn,
		RouteOrigin:    departure,
	}
}
