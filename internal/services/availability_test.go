package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/adapters/maps"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/domain"
)

type fakeScheduleRepo struct {
	employees   []domain.Employee
	assignments []domain.JobAssignment
	bookings    []domain.Booking

	created      []domain.JobAssignment
	nextID       int
	cancelledIDs []int
}

func (f *fakeScheduleRepo) EmployeesByCategory(_ context.Context, categoryID int) ([]domain.Employee, error) {
	out := []domain.Employee{}
	for _, e := range f.employees {
		if e.CategoryID == categoryID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) EmployeeByID(_ context.Context, employeeID int) (domain.Employee, error) {
	for _, e := range f.employees {
		if e.EmployeeID == employeeID {
			return e, nil
		}
	}
	return domain.Employee{}, domain.ErrUnknownEmployee
}

func (f *fakeScheduleRepo) BookingByID(_ context.Context, bookingID int) (domain.Booking, error) {
	for _, b := range f.bookings {
		if b.BookingID == bookingID {
			return b, nil
		}
	}
	return domain.Booking{}, domain.ErrUnknownBooking
}

func (f *fakeScheduleRepo) JobsForEmployeeOnDate(_ context.Context, employeeID int, date domain.Date) ([]domain.JobAssignment, error) {
	out := []domain.JobAssignment{}
	for _, a := range f.assignments {
		if a.EmployeeID == employeeID && a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) AssignmentsForCategoryOnDate(ctx context.Context, categoryID int, date domain.Date) ([]domain.JobAssignment, error) {
	byEmployee := map[int]bool{}
	for _, e := range f.employees {
		if e.CategoryID == categoryID {
			byEmployee[e.EmployeeID] = true
		}
	}

	out := []domain.JobAssignment{}
	for _, a := range f.assignments {
		if byEmployee[a.EmployeeID] && a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) CreateAssignment(_ context.Context, a domain.JobAssignment) (domain.JobAssignment, error) {
	for _, existing := range f.assignments {
		if existing.EmployeeID == a.EmployeeID && existing.Date == a.Date && existing.SlotID == a.SlotID {
			return domain.JobAssignment{}, domain.ErrSlotTaken
		}
	}
	f.nextID++
	a.AssignmentID = f.nextID
	f.assignments = append(f.assignments, a)
	f.created = append(f.created, a)
	return a, nil
}

func (f *fakeScheduleRepo) CancelAssignment(_ context.Context, assignmentID int) error {
	for i, a := range f.assignments {
		if a.AssignmentID == assignmentID {
			f.assignments = append(f.assignments[:i], f.assignments[i+1:]...)
			f.cancelledIDs = append(f.cancelledIDs, assignmentID)
			return nil
		}
	}
	return domain.ErrUnknownAssignment
}

type fakeReferenceRepo struct {
	categories []domain.ServiceCategory
	slots      []domain.TimeSlot
}

func (f *fakeReferenceRepo) Categories(context.Context) ([]domain.ServiceCategory, error) {
	return f.categories, nil
}

func (f *fakeReferenceRepo) CategoryByID(_ context.Context, categoryID int) (domain.ServiceCategory, error) {
	for _, c := range f.categories {
		if c.CategoryID == categoryID {
			return c, nil
		}
	}
	return domain.ServiceCategory{}, domain.ErrUnknownCategory
}

func (f *fakeReferenceRepo) Slots(context.Context) ([]domain.TimeSlot, error) {
	return f.slots, nil
}

func (f *fakeReferenceRepo) SlotByID(_ context.Context, slotID int) (domain.TimeSlot, error) {
	for _, s := range f.slots {
		if s.SlotID == slotID {
			return s, nil
		}
	}
	return domain.TimeSlot{}, domain.ErrUnknownSlot
}

func testReference() *fakeReferenceRepo {
	return &fakeReferenceRepo{
		categories: []domain.ServiceCategory{
			{CategoryID: 1, Name: "Lawncare"},
			{CategoryID: 2, Name: "House Cleaning"},
		},
		slots: []domain.TimeSlot{
			{SlotID: 1, Label: "7:30-9:30", Ordinal: 0},
			{SlotID: 2, Label: "10:00-12:00", Ordinal: 1},
			{SlotID: 3, Label: "12:30-2:30", Ordinal: 2},
			{SlotID: 4, Label: "3:00-5:00", Ordinal: 3},
		},
	}
}

const testDate = domain.Date("2026-09-01")

func TestFeasibleEmployeesOrdersAndAnnotates(t *testing.T) {
	schedule := &fakeScheduleRepo{
		employees: []domain.Employee{
			{EmployeeID: 1, Name: "Ada", HomeAddress: "H1", CategoryID: 1},
			{EmployeeID: 2, Name: "Ben", HomeAddress: "H2", CategoryID: 1},
			{EmployeeID: 3, Name: "Cal", HomeAddress: "H3", CategoryID: 1},
			{EmployeeID: 4, Name: "Dot", HomeAddress: "H4", CategoryID: 2},
		},
		assignments: []domain.JobAssignment{
			// Ben already works slot 2 that day: hard conflict.
			{AssignmentID: 1, EmployeeID: 2, Date: testDate, SlotID: 2, SlotOrdinal: 1, JobsiteAddress: "X"},
			// Cal has a morning job at A, so Cal departs from A.
			{AssignmentID: 2, EmployeeID: 3, Date: testDate, SlotID: 1, SlotOrdinal: 0, JobsiteAddress: "A"},
		},
	}
	estimator := maps.NewMockEstimator([]maps.MockPair{
		{From: "H1", To: "SITE", Minutes: 12},
		{From: "A", To: "SITE", Minutes: 28},
	})

	m := NewMatcher(schedule, testReference(), estimator, 3, time.Second)

	results, err := m.FeasibleEmployees(context.Background(), "SITE", testDate, 2, 1)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Employee.EmployeeID)
	assert.Equal(t, 12, results[0].DriveTimeMinutes)
	assert.Equal(t, "H1", results[0].RouteOrigin)
	assert.Equal(t, 3, results[1].Employee.EmployeeID)
	assert.Equal(t, 28, results[1].DriveTimeMinutes)
	assert.Equal(t, "A", results[1].RouteOrigin)
}

func TestFeasibleEmployeesInputErrors(t *testing.T) {
	schedule := &fakeScheduleRepo{}
	estimator := maps.NewMockEstimator(nil)
	m := NewMatcher(schedule, testReference(), estimator, 2, time.Second)

	_, err := m.FeasibleEmployees(context.Background(), "SITE", testDate, 1, 99)
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)

	_, err = m.FeasibleEmployees(context.Background(), "SITE", testDate, 99, 1)
	assert.ErrorIs(t, err, domain.ErrUnknownSlot)

	_, err = m.FeasibleEmployees(context.Background(), "   ", testDate, 1, 1)
	assert.ErrorIs(t, err, domain.ErrEmptyAddress)

	assert.Equal(t, 0, estimator.Calls(), "input errors must not reach the estimator")
}

func TestFeasibleEmployeesEstimatorDownMeansNobody(t *testing.T) {
	schedule := &fakeScheduleRepo{
		employees: []domain.Employee{
			{EmployeeID: 1, Name: "Ada", HomeAddress: "H1", CategoryID: 1},
			{EmployeeID: 2, Name: "Ben", HomeAddress: "H2", CategoryID: 1},
		},
	}
	m := NewMatcher(schedule, testReference(), maps.NewMockEstimator(nil), 2, time.Second)

	results, err := m.FeasibleEmployees(context.Background(), "SITE", testDate, 1, 1)

	require.NoError(t, err, "estimator failures are absorbed, not surfaced")
	assert.Empty(t, results)
}

func TestFeasibleEmployeesNoCandidatesIsNotAnError(t *testing.T) {
	schedule := &fakeScheduleRepo{}
	m := NewMatcher(schedule, testReference(), maps.NewMockEstimator(nil), 2, time.Second)

	results, err := m.FeasibleEmployees(context.Background(), "SITE", testDate, 1, 1)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFeasibleEmployeesIdempotent(t *testing.T) {
	schedule := &fakeScheduleRepo{
		employees: []domain.Employee{
			{EmployeeID: 1, Name: "Ada", HomeAddress: "H1", CategoryID: 1},
			{EmployeeID: 2, Name: "Ben", HomeAddress: "H2", CategoryID: 1},
			{EmployeeID: 3, Name: "Cal", HomeAddress: "H3", CategoryID: 1},
		},
	}
	estimator := maps.NewMockEstimator([]maps.MockPair{
		{From: "H1", To: "SITE", Minutes: 10},
		{From: "H2", To: "SITE", Minutes: 30},
		{From: "H3", To: "SITE", Minutes: 3},
	})
	m := NewMatcher(schedule, testReference(), estimator, 3, time.Second)

	first, err := m.FeasibleEmployees(context.Background(), "SITE", testDate, 1, 1)
	require.NoError(t, err)
	second, err := m.FeasibleEmployees(context.Background(), "SITE", testDate, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestByDateGridCoversAllSlotsAndCategories(t *testing.T) {
	schedule := &fakeScheduleRepo{
		employees: []domain.Employee{
			{EmployeeID: 1, Name: "Ada", HomeAddress: "H1", CategoryID: 1},
			{EmployeeID: 2, Name: "Dot", HomeAddress: "H4", CategoryID: 2},
		},
	}
	estimator := maps.NewMockEstimator([]maps.MockPair{
		{From: "H1", To: "SITE", Minutes: 10},
		{From: "H4", To: "SITE", Minutes: 45},
	})
	m := NewMatcher(schedule, testReference(), estimator, 2, time.Second)

	grid, err := m.ByDateGrid(context.Background(), "SITE", testDate)
	require.NoError(t, err)

	require.Len(t, grid, 4)
	for slot, row := range grid {
		require.Len(t, row, 2, "slot %q", slot.Label)
		for category, results := range row {
			switch category.CategoryID {
			case 1:
				assert.Len(t, results, 1, "Ada is in range for every slot")
			case 2:
				assert.Empty(t, results, "Dot's home leg is over budget")
			}
		}
	}
}

func TestBySlotGridDefaultsToFourWeeks(t *testing.T) {
	schedule := &fakeScheduleRepo{
		employees: []domain.Employee{
			{EmployeeID: 1, Name: "Ada", HomeAddress: "H1", CategoryID: 1},
		},
	}
	estimator := maps.NewMockEstimator([]maps.MockPair{
		{From: "H1", To: "SITE", Minutes: 10},
	})
	m := NewMatcher(schedule, testReference(), estimator, 2, time.Second)

	start := domain.Date("2026-09-01")
	grid, err := m.BySlotGrid(context.Background(), "SITE", 1, start, 0)
	require.NoError(t, err)

	require.Len(t, grid, 28)
	assert.Contains(t, grid, start)
	assert.Contains(t, grid, start.AddDays(27))
	assert.NotContains(t, grid, start.AddDays(28))

	row := grid[start.AddDays(5)]
	require.Len(t, row[domain.ServiceCategory{CategoryID: 1, Name: "Lawncare"}], 1)
}

// blockingEstimator never answers until the context is done, standing
// in for an upstream that has stopped responding.
type blockingEstimator struct{}

func (blockingEstimator) EstimateMinutes(ctx context.Context, _, _ string) (int, bool) {
	<-ctx.Done()
	return 0, false
}

func TestFeasibleEmployeesCancelledCallerGetsEmptyResult(t *testing.T) {
	schedule := &fakeScheduleRepo{
		employees: []domain.Employee{
			{EmployeeID: 1, Name: "Ada", HomeAddress: "H1", CategoryID: 1},
			{EmployeeID: 2, Name: "Ben", HomeAddress: "H2", CategoryID: 1},
		},
	}
	estimator := maps.NewMockEstimator([]maps.MockPair{
		{From: "H1", To: "SITE", Minutes: 10},
		{From: "H2", To: "SITE", Minutes: 10},
	})
	m := NewMatcher(schedule, testReference(), estimator, 2, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := m.FeasibleEmployees(ctx, "SITE", testDate, 1, 1)

	require.NoError(t, err, "cancellation yields a partial result, not an error")
	assert.Empty(t, results)
	assert.Equal(t, 0, estimator.Calls(), "no estimates after the caller is gone")
}

func TestFeasibleEmployeesDeadlineBoundsBlockedEstimates(t *testing.T) {
	schedule := &fakeScheduleRepo{
		employees: []domain.Employee{
			{EmployeeID: 1, Name: "Ada", HomeAddress: "H1", CategoryID: 1},
			{EmployeeID: 2, Name: "Ben", HomeAddress: "H2", CategoryID: 1},
		},
	}
	m := NewMatcher(schedule, testReference(), blockingEstimator{}, 2, 50*time.Millisecond)

	start := time.Now()
	results, err := m.FeasibleEmployees(context.Background(), "SITE", testDate, 1, 1)

	require.NoError(t, err)
	assert.Empty(t, results, "an employee not evaluated before the deadline is never feasible")
	assert.Less(t, time.Since(start), 5*time.Second, "the query must return at its deadline, not hang")
}

func TestBySlotGridSharesOneDeadlineAcrossCells(t *testing.T) {
	schedule := &fakeScheduleRepo{
		employees: []domain.Employee{
			{EmployeeID: 1, Name: "Ada", HomeAddress: "H1", CategoryID: 1},
		},
	}
	m := NewMatcher(schedule, testReference(), blockingEstimator{}, 2, 100*time.Millisecond)

	start := time.Now()
	grid, err := m.BySlotGrid(context.Background(), "SITE", 1, domain.Date("2026-09-01"), 28)

	require.NoError(t, err)
	// 28 days x 2 categories with a per-cell budget would block for
	// several seconds; one shared deadline returns after ~100ms.
	assert.Less(t, time.Since(start), 3*time.Second)

	require.Len(t, grid, 28)
	for day, row := range grid {
		require.Len(t, row, 2, "day %s", day)
		for _, results := range row {
			assert.Empty(t, results)
		}
	}
}

func TestBySlotGridUnknownSlot(t *testing.T) {
	m := NewMatcher(&fakeScheduleRepo{}, testReference(), maps.NewMockEstimator(nil), 2, time.Second)

	_, err := m.BySlotGrid(context.Background(), "SITE", 42, testDate, 7)
	assert.ErrorIs(t, err, domain.ErrUnknownSlot)
}
