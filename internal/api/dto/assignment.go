package dto

type CreateAssignmentRequest struct {
	EmployeeID     int    `json:"employee_id"`
	BookingID      int    `json:"booking_id"`
	JobsiteAddress string `json:"jobsite_address"`
}

type AssignmentResponse struct {
	AssignmentID   int    `json:"assignment_id"`
	EmployeeID     int    `json:"employee_id"`
	BookingID      int    `json:"booking_id"`
	Date           string `json:"date"`
	SlotID         int    `json:"slot_id"`
	JobsiteAddress string `json:"jobsite_address"`
}
