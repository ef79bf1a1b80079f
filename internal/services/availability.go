package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/domain"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/platform/obs"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/ports"
)

const (
	defaultConcurrency  = 5
	defaultQueryTimeout = 30 * time.Second
)

type candidateOutcome struct {
	employee domain.Employee
	verdict  RouteVerdict
}

// Matcher orchestrates the route-feasibility evaluator across all
// employees of a category for a requested slot.
//
// Matching is a pure read: no assignment mutation ever happens on this
// path, so caller cancellation is always safe and repeated identical
// queries against an unchanged store and estimator return identical
// results.
type Matcher struct {
	schedule  ports.ScheduleRepository
	reference ports.ReferenceRepository
	estimator ports.TravelTimeEstimator

	// concurrency bounds in-flight feasibility checks; it is sized to
	// the estimator's safe concurrent-request budget, not to CPU.
	concurrency  int
	queryTimeout time.Duration
}

func NewMatcher(
	schedule ports.ScheduleRepository,
	reference ports.ReferenceRepository,
	estimator ports.TravelTimeEstimator,
	concurrency int,
	queryTimeout time.Duration,
) *Matcher {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}

	return &Matcher{
		schedule:     schedule,
		reference:    reference,
		estimator:    estimator,
		concurrency:  concurrency,
		queryTimeout: queryTimeout,
	}
}

// FeasibleEmployees returns every employee in the category who can
// absorb a job at (date, slot, address) without a slot conflict or an
// adjacent leg over budget, in ascending employee-ID order, each
// annotated with the inbound drive time for display.
//
// An empty list is a valid "nobody available" answer, not an error.
// Only malformed input (unknown category or slot, empty address)
// produces an error.
func (m *Matcher) FeasibleEmployees(
	ctx context.Context,
	address string,
	date domain.Date,
	slotID int,
	categoryID int,
) (_ []domain.CandidateResult, err error) {
	defer obs.Time(ctx, "match.FeasibleEmployees")(&err)
	obs.RecordMatchQuery("slot")

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("feasible employees: %w", domain.ErrEmptyAddress)
	}

	slot, err := m.reference.SlotByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("feasible employees: slot %d: %w", slotID, err)
	}

	category, err := m.reference.CategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("feasible employees: category %d: %w", categoryID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.queryTimeout)
	defer cancel()

	return m.feasibleForSlot(ctx, address, date, slot, category)
}

// feasibleForSlot is the shared primitive behind FeasibleEmployees and
// both grid queries; inputs are assumed validated and the query
// deadline, if any, is already on ctx. Grid queries share one deadline
// across all their cells.
func (m *Matcher) feasibleForSlot(
	ctx context.Context,
	address string,
	date domain.Date,
	slot domain.TimeSlot,
	category domain.ServiceCategory,
) ([]domain.CandidateResult, error) {
	employees, err := m.schedule.EmployeesByCategory(ctx, category.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("match: list employees for category %d: %w", category.CategoryID, err)
	}
	if len(employees) == 0 {
		return []domain.CandidateResult{}, nil
	}

	// One batched read for the whole category+date, partitioned per
	// employee in memory, instead of N per-employee itinerary queries.
	assignments, err := m.schedule.AssignmentsForCategoryOnDate(ctx, category.CategoryID, date)
	if err != nil {
		return nil, fmt.Errorf("match: load assignments for category %d date %s: %w", category.CategoryID, date, err)
	}

	itineraries := make(map[int][]domain.JobAssignment, len(employees))
	for _, a := range assignments {
		itineraries[a.EmployeeID] = append(itineraries[a.EmployeeID], a)
	}

	sem := make(chan struct{}, m.concurrency)
	resultsCh := make(chan candidateOutcome, len(employees))
	var wg sync.WaitGroup

	for _, emp := range employees {
		// Once the query deadline or the caller cancels, skip the
		// remaining employees and return what has been evaluated.
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(emp domain.Employee) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			verdict := EvaluateRoute(ctx, m.estimator, emp.HomeAddress, itineraries[emp.EmployeeID], slot.Ordinal, address)
			resultsCh <- candidateOutcome{employee: emp, verdict: verdict}
		}(emp)
	}

	wg.Wait()
	close(resultsCh)

	feasible := make([]domain.CandidateResult, 0, len(employees))
	for out := range resultsCh {
		if !out.verdict.Feasible {
			continue
		}
		feasible = append(feasible, domain.CandidateResult{
			Employee:         out.employee,
			DriveTimeMinutes: out.verdict.DriveInMinutes,
			RouteOrigin:      out.verdict.RouteOrigin,
		})
	}

	// Stable employee-ID order for deterministic responses.
	sort.Slice(feasible, func(i, j int) bool {
		return feasible[i].Employee.EmployeeID < feasible[j].Employee.EmployeeID
	})

	return feasible, nil
}
