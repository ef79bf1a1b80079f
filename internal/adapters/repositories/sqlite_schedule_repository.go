package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/domain"
)

// SQLite-backed implementation of the ScheduleRepository port.
//
// Assignment reads join time_slots so callers always see the slot
// ordinal alongside the slot ID; all itinerary ordering is by ordinal.
type SqliteScheduleRepository struct{ DB *sql.DB }

func NewSqliteScheduleRepository(db *sql.DB) *SqliteScheduleRepository {
	return &SqliteScheduleRepository{DB: db}
}

// Return all employees in a category, ordered by employee ID.
func (s *SqliteScheduleRepository) EmployeesByCategory(ctx context.Context, categoryID int) ([]domain.Employee, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite schedule repository: DB is nil")
	}

	query := `
	SELECT
		employee_id,
		name,
		home_address,
		category_id
	FROM employees
	WHERE category_id = ?
	ORDER BY employee_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("employees by category: query employees table: %w", err)
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0, 16)
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.EmployeeID, &e.Name, &e.HomeAddress, &e.CategoryID); err != nil {
			return nil, fmt.Errorf("employees by category: scan row: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("employees by category: row iteration: %w", err)
	}

	return employees, nil
}

func (s *SqliteScheduleRepository) EmployeeByID(ctx context.Context, employeeID int) (domain.Employee, error) {
	if s.DB == nil {
		return domain.Employee{}, errors.New("sqlite schedule repository: DB is nil")
	}

	query := `
	SELECT
		employee_id,
		name,
		home_address,
		category_id
	FROM employees
	WHERE employee_id = ?;
	`
	var e domain.Employee
	err := s.DB.QueryRowContext(ctx, query, employeeID).Scan(&e.EmployeeID, &e.Name, &e.HomeAddress, &e.CategoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Employee{}, fmt.Errorf("employee %d: %w", employeeID, domain.ErrUnknownEmployee)
	}
	if err != nil {
		return domain.Employee{}, fmt.Errorf("employee by id: query employees table: %w", err)
	}

	return e, nil
}

func (s *SqliteScheduleRepository) BookingByID(ctx context.Context, bookingID int) (domain.Booking, error) {
	if s.DB == nil {
		return domain.Booking{}, errors.New("sqlite schedule repository: DB is nil")
	}

	query := `
	SELECT
		booking_id,
		customer_name,
		customer_address,
		category_id,
		date,
		slot_id
	FROM bookings
	WHERE booking_id = ?;
	`
	var b domain.Booking
	var date string
	err := s.DB.QueryRowContext(ctx, query, bookingID).Scan(
		&b.BookingID, &b.CustomerName, &b.CustomerAddress, &b.CategoryID, &date, &b.SlotID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, fmt.Errorf("booking %d: %w", bookingID, domain.ErrUnknownBooking)
	}
	if err != nil {
		return domain.Booking{}, fmt.Errorf("booking by id: query bookings table: %w", err)
	}
	b.Date = domain.Date(date)

	return b, nil
}

// Return one employee's live assignments for a date, ordered by slot
// ordinal. Cancelled assignments are deleted rows, so whatever is
// here is the live itinerary.
func (s *SqliteScheduleRepository) JobsForEmployeeOnDate(ctx context.Context, employeeID int, date domain.Date) ([]domain.JobAssignment, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite schedule repository: DB is nil")
	}

	query := `
	SELECT
		a.assignment_id,
		a.employee_id,
		a.booking_id,
		a.date,
		a.slot_id,
		t.ordinal,
		a.jobsite_address
	FROM job_assignments a
	JOIN time_slots t ON t.slot_id = a.slot_id
	WHERE a.employee_id = ?
		AND a.date = ?
	ORDER BY t.ordinal;
	`
	rows, err := s.DB.QueryContext(ctx, query, employeeID, string(date))
	if err != nil {
		return nil, fmt.Errorf("jobs for employee on date: query job_assignments table: %w", err)
	}
	defer rows.Close()

	return scanAssignments(rows, "jobs for employee on date")
}

// Return every live assignment for a category on a date in one read,
// ordered by (employee ID, slot ordinal).
func (s *SqliteScheduleRepository) AssignmentsForCategoryOnDate(ctx context.Context, categoryID int, date domain.Date) ([]domain.JobAssignment, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite schedule repository: DB is nil")
	}

	query := `
	SELECT
		a.assignment_id,
		a.employee_id,
		a.booking_id,
		a.date,
		a.slot_id,
		t.ordinal,
		a.jobsite_address
	FROM job_assignments a
	JOIN time_slots t ON t.slot_id = a.slot_id
	JOIN employees e ON e.employee_id = a.employee_id
	WHERE e.category_id = ?
		AND a.date = ?
	ORDER BY a.employee_id, t.ordinal;
	`
	rows, err := s.DB.QueryContext(ctx, query, categoryID, string(date))
	if err != nil {
		return nil, fmt.Errorf("assignments for category on date: query job_assignments table: %w", err)
	}
	defer rows.Close()

	return scanAssignments(rows, "assignments for category on date")
}

// Create an assignment. The (employee, date, slot) uniqueness check
// and the insert run in one transaction so two concurrent bookings of
// the same slot cannot both succeed.
func (s *SqliteScheduleRepository) CreateAssignment(ctx context.Context, a domain.JobAssignment) (domain.JobAssignment, error) {
	if s.DB == nil {
		return domain.JobAssignment{}, errors.New("sqlite schedule repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.JobAssignment{}, fmt.Errorf("create assignment: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var taken int
	err = tx.QueryRowContext(ctx, `
	SELECT COUNT(*)
	FROM job_assignments
	WHERE employee_id = ?
		AND date = ?
		AND slot_id = ?;
	`, a.EmployeeID, string(a.Date), a.SlotID).Scan(&taken)
	if err != nil {
		return domain.JobAssignment{}, fmt.Errorf("create assignment: check slot: %w", err)
	}
	if taken > 0 {
		return domain.JobAssignment{}, domain.ErrSlotTaken
	}

	res, err := tx.ExecContext(ctx, `
	INSERT INTO job_assignments (
		employee_id,
		booking_id,
		date,
		slot_id,
		jobsite_address
	)
	VALUES (?, ?, ?, ?, ?);
	`, a.EmployeeID, a.BookingID, string(a.Date), a.SlotID, a.JobsiteAddress)
	if err != nil {
		// A concurrent writer that won the race between the precheck
		// and this insert hits the UNIQUE(employee_id, date, slot_id)
		// constraint instead of the precheck.
		if isSlotConflict(err) {
			return domain.JobAssignment{}, domain.ErrSlotTaken
		}
		return domain.JobAssignment{}, fmt.Errorf("create assignment: insert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.JobAssignment{}, fmt.Errorf("create assignment: last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.JobAssignment{}, fmt.Errorf("create assignment: commit: %w", err)
	}

	a.AssignmentID = int(id)
	return a, nil
}

// Delete an assignment; the itinerary for its date shrinks to the
// remaining live rows.
func (s *SqliteScheduleRepository) CancelAssignment(ctx context.Context, assignmentID int) error {
	if s.DB == nil {
		return errors.New("sqlite schedule repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `
	DELETE FROM job_assignments
	WHERE assignment_id = ?;
	`, assignmentID)
	if err != nil {
		return fmt.Errorf("cancel assignment: delete: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancel assignment: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("assignment %d: %w", assignmentID, domain.ErrUnknownAssignment)
	}

	return nil
}

func isSlotConflict(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func scanAssignments(rows *sql.Rows, op string) ([]domain.JobAssignment, error) {
	assignments := make([]domain.JobAssignment, 0, 8)
	for rows.Next() {
		var a domain.JobAssignment
		var date string
		if err := rows.Scan(
			&a.AssignmentID, &a.EmployeeID, &a.BookingID, &date, &a.SlotID, &a.SlotOrdinal, &a.JobsiteAddress,
		); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		a.Date = domain.Date(date)
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: row iteration: %w", op, err)
	}

	return assignments, nil
}
