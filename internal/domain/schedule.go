package domain

// Booking is owned by the external booking/checkout collaborator.
// The engine only reads bookings to resolve jobsite addresses and to
// build employee itineraries; it never mutates them.
type Booking struct {
	BookingID       int
	CustomerName    string
	CustomerAddress string
	CategoryID      int
	Date            Date
	SlotID          int
}

// JobAssignment links one employee to one booking at one date and slot.
//
// JobsiteAddress is resolved from the booking's customer address when
// the assignment is created and is immutable thereafter. Cancellation
// deletes the row, so the set of rows for a date is always the live
// itinerary. At most one assignment exists per (employee, date, slot).
type JobAssignment struct {
	AssignmentID   int
	EmployeeID     int
	BookingID      int
	Date           Date
	SlotID         int
	SlotOrdinal    int
	JobsiteAddress string
}
