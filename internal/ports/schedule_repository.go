package ports

import (
	"context"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/domain"
)

// Port: a boundary for reading employees, bookings and job assignments
// from a data source, and for the two assignment mutations the booking
// collaborator performs (create on confirmation, delete on cancel).
type ScheduleRepository interface {
	// Retrieve all employees in one service category, ordered by
	// employee ID.
	EmployeesByCategory(ctx context.Context, categoryID int) ([]domain.Employee, error)

	// Retrieve one employee. Returns domain.ErrUnknownEmployee when
	// no such employee exists.
	EmployeeByID(ctx context.Context, employeeID int) (domain.Employee, error)

	// Retrieve one booking. Returns domain.ErrUnknownBooking when no
	// such booking exists.
	BookingByID(ctx context.Context, bookingID int) (domain.Booking, error)

	// Retrieve one employee's live assignments for a date, in strictly
	// increasing slot-ordinal order.
	JobsForEmployeeOnDate(ctx context.Context, employeeID int, date domain.Date) ([]domain.JobAssignment, error)

	// Retrieve every live assignment for a category on a date in one
	// read, ordered by (employee ID, slot ordinal). The matcher
	// partitions the result per employee in memory instead of issuing
	// one query per employee.
	AssignmentsForCategoryOnDate(ctx context.Context, categoryID int, date domain.Date) ([]domain.JobAssignment, error)

	// Create an assignment. Returns domain.ErrSlotTaken when the
	// employee already holds an assignment at the same date and slot.
	CreateAssignment(ctx context.Context, a domain.JobAssignment) (domain.JobAssignment, error)

	// Delete an assignment. Returns domain.ErrUnknownAssignment when
	// no such assignment exists.
	CancelAssignment(ctx context.Context, assignmentID int) error
}
