package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/domain"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/platform/obs"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/ports"
)

// AssignmentService is the thin write surface the booking/checkout
// collaborator calls once a booking is confirmed. It owns none of the
// cart or billing logic.
type AssignmentService struct {
	schedule  ports.ScheduleRepository
	reference ports.ReferenceRepository
}

func NewAssignmentService(schedule ports.ScheduleRepository, reference ports.ReferenceRepository) *AssignmentService {
	return &AssignmentService{schedule: schedule, reference: reference}
}

type CreateAssignmentRequest struct {
	EmployeeID int
	BookingID  int
	// JobsiteAddress overrides the booking's customer address when
	// non-empty; it defaults to that address otherwise and is
	// immutable after creation.
	JobsiteAddress string
}

// Create records that an employee will work a booking's date and slot.
// The employee must belong to the booking's service category, and must
// not already hold an assignment at that date and slot.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (_ domain.JobAssignment, err error) {
	defer obs.Time(ctx, "assignments.Create")(&err)

	booking, err := s.schedule.BookingByID(ctx, req.BookingID)
	if err != nil {
		return domain.JobAssignment{}, fmt.Errorf("create assignment: booking %d: %w", req.BookingID, err)
	}

	employee, err := s.schedule.EmployeeByID(ctx, req.EmployeeID)
	if err != nil {
		return domain.JobAssignment{}, fmt.Errorf("create assignment: employee %d: %w", req.EmployeeID, err)
	}

	if employee.CategoryID != booking.CategoryID {
		return domain.JobAssignment{}, fmt.Errorf(
			"create assignment: employee %d category %d vs booking category %d: %w",
			employee.EmployeeID, employee.CategoryID, booking.CategoryID, domain.ErrCategoryMismatch,
		)
	}

	slot, err := s.reference.SlotByID(ctx, booking.SlotID)
	if err != nil {
		return domain.JobAssignment{}, fmt.Errorf("create assignment: slot %d: %w", booking.SlotID, err)
	}

	jobsite := strings.TrimSpace(req.JobsiteAddress)
	if jobsite == "" {
		jobsite = strings.TrimSpace(booking.CustomerAddress)
	}
	if jobsite == "" {
		return domain.JobAssignment{}, fmt.Errorf("create assignment: booking %d: %w", booking.BookingID, domain.ErrEmptyAddress)
	}

	created, err := s.schedule.CreateAssignment(ctx, domain.JobAssignment{
		EmployeeID:     employee.EmployeeID,
		BookingID:      booking.BookingID,
		Date:           booking.Date,
		SlotID:         slot.SlotID,
		SlotOrdinal:    slot.Ordinal,
		JobsiteAddress: jobsite,
	})
	if err != nil {
		return domain.JobAssignment{}, fmt.Errorf(
			"create assignment: employee %d booking %d: %w",
			employee.EmployeeID, booking.BookingID, err,
		)
	}

	return created, nil
}

// Cancel deletes an assignment so the employee's itinerary is the live
// set again. Assignments are never edited in place.
func (s *AssignmentService) Cancel(ctx context.Context, assignmentID int) (err error) {
	defer obs.Time(ctx, "assignments.Cancel")(&err)

	if err := s.schedule.CancelAssignment(ctx, assignmentID); err != nil {
		return fmt.Errorf("cancel assignment %d: %w", assignmentID, err)
	}
	return nil
}
