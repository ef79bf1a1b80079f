package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCategoriesQuery := `
	CREATE TABLE IF NOT EXISTS service_categories (
		category_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);
	`

	createSlotsQuery := `
	CREATE TABLE IF NOT EXISTS time_slots (
		slot_id INTEGER PRIMARY KEY,
		label TEXT NOT NULL UNIQUE,
		ordinal INTEGER NOT NULL UNIQUE
	);
	`

	createEmployeesQuery := `
	CREATE TABLE IF NOT EXISTS employees (
		employee_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		home_address TEXT NOT NULL,
		category_id INTEGER NOT NULL REFERENCES service_categories(category_id)
	);
	`

	createBookingsQuery := `
	CREATE TABLE IF NOT EXISTS bookings (
		booking_id INTEGER PRIMARY KEY,
		customer_name TEXT NOT NULL,
		customer_address TEXT NOT NULL,
		category_id INTEGER NOT NULL REFERENCES service_categories(category_id),
		date TEXT NOT NULL,
		slot_id INTEGER NOT NULL REFERENCES time_slots(slot_id)
	);
	`

	createAssignmentsQuery := `
	CREATE TABLE IF NOT EXISTS job_assignments (
		assignment_id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id INTEGER NOT NULL REFERENCES employees(employee_id),
		booking_id INTEGER NOT NULL REFERENCES bookings(booking_id),
		date TEXT NOT NULL,
		slot_id INTEGER NOT NULL REFERENCES time_slots(slot_id),
		jobsite_address TEXT NOT NULL,
		UNIQUE (employee_id, date, slot_id)
	);
	`

	createTravelTimeCacheQuery := `
	CREATE TABLE IF NOT EXISTS travel_time_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createEmployeeCategoryIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_employees_category
	ON employees(category_id);
	`

	createAssignmentIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_job_assignments_employee_date
	ON job_assignments(employee_id, date);
	`

	statements := []string{
		createCategoriesQuery,
		createSlotsQuery,
		createEmployeesQuery,
		createBookingsQuery,
		createAssignmentsQuery,
		createTravelTimeCacheQuery,
		createEmployeeCategoryIndexQuery,
		createAssignmentIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type CategorySeed struct {
	CategoryID int    `json:"category_id"`
	Name       string `json:"name"`
}

type SlotSeed struct {
	SlotID  int    `json:"slot_id"`
	Label   string `json:"label"`
	Ordinal int    `json:"ordinal"`
}

type EmployeeSeed struct {
	EmployeeID  int    `json:"employee_id"`
	Name        string `json:"name"`
	HomeAddress string `json:"home_address"`
	CategoryID  int    `json:"category_id"`
}

type BookingSeed struct {
	BookingID       int    `json:"booking_id"`
	CustomerName    string `json:"customer_name"`
	CustomerAddress string `json:"customer_address"`
	CategoryID      int    `json:"category_id"`
	Date            string `json:"date"`
	SlotID          int    `json:"slot_id"`
}

type AssignmentSeed struct {
	EmployeeID int `json:"employee_id"`
	BookingID  int `json:"booking_id"`
}

type ScheduleSeed struct {
	Categories  []CategorySeed   `json:"categories"`
	TimeSlots   []SlotSeed       `json:"time_slots"`
	Employees   []EmployeeSeed   `json:"employees"`
	Bookings    []BookingSeed    `json:"bookings"`
	Assignments []AssignmentSeed `json:"job_assignments"`
}

// Populate the database with reference data, employees and sample
// bookings from a JSON file. Assignment jobsite addresses resolve to
// the booking's customer address, mirroring what assignment creation
// does at runtime.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed schedule: read %q: %w", jsonPath, err)
	}

	var seed ScheduleSeed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed schedule: parse json: %w", err)
	}

	bookingsByID := make(map[int]BookingSeed, len(seed.Bookings))
	for i, b := range seed.Bookings {
		if b.BookingID <= 0 {
			return fmt.Errorf("seed schedule: invalid booking_id at index %d: %d", i+1, b.BookingID)
		}
		if strings.TrimSpace(b.CustomerAddress) == "" {
			return fmt.Errorf("seed schedule: booking_id=%d: customer_address cannot be empty", b.BookingID)
		}
		if _, err := domain.ParseDate(b.Date); err != nil {
			return fmt.Errorf("seed schedule: booking_id=%d: %w", b.BookingID, err)
		}
		bookingsByID[b.BookingID] = b
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed schedule: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range seed.Categories {
		if _, err := tx.Exec(`
		INSERT OR REPLACE INTO service_categories (category_id, name)
		VALUES (?, ?);
		`, c.CategoryID, c.Name); err != nil {
			return fmt.Errorf("seed schedule: insert category_id=%d: %w", c.CategoryID, err)
		}
	}

	for _, t := range seed.TimeSlots {
		if _, err := tx.Exec(`
		INSERT OR REPLACE INTO time_slots (slot_id, label, ordinal)
		VALUES (?, ?, ?);
		`, t.SlotID, t.Label, t.Ordinal); err != nil {
			return fmt.Errorf("seed schedule: insert slot_id=%d: %w", t.SlotID, err)
		}
	}

	for _, e := range seed.Employees {
		if strings.TrimSpace(e.HomeAddress) == "" {
			return fmt.Errorf("seed schedule: employee_id=%d: home_address cannot be empty", e.EmployeeID)
		}
		if _, err := tx.Exec(`
		INSERT OR REPLACE INTO employees (employee_id, name, home_address, category_id)
		VALUES (?, ?, ?, ?);
		`, e.EmployeeID, e.Name, e.HomeAddress, e.CategoryID); err != nil {
			return fmt.Errorf("seed schedule: insert employee_id=%d: %w", e.EmployeeID, err)
		}
	}

	for _, b := range seed.Bookings {
		if _, err := tx.Exec(`
		INSERT OR REPLACE INTO bookings (booking_id, customer_name, customer_address, category_id, date, slot_id)
		VALUES (?, ?, ?, ?, ?, ?);
		`, b.BookingID, b.CustomerName, b.CustomerAddress, b.CategoryID, b.Date, b.SlotID); err != nil {
			return fmt.Errorf("seed schedule: insert booking_id=%d: %w", b.BookingID, err)
		}
	}

	for i, a := range seed.Assignments {
		booking, ok := bookingsByID[a.BookingID]
		if !ok {
			return fmt.Errorf("seed schedule: assignment at index %d references unknown booking_id=%d", i+1, a.BookingID)
		}
		if _, err := tx.Exec(`
		INSERT OR REPLACE INTO job_assignments (employee_id, booking_id, date, slot_id, jobsite_address)
		VALUES (?, ?, ?, ?, ?);
		`, a.EmployeeID, a.BookingID, booking.Date, booking.SlotID, booking.CustomerAddress); err != nil {
			return fmt.Errorf("seed schedule: insert assignment employee_id=%d booking_id=%d: %w", a.EmployeeID, a.BookingID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed schedule: commit tx: %w", err)
	}

	return nil
}
