package dto

// One feasible employee for a requested (date, slot, category, address).
type CandidateResponse struct {
	EmployeeID       int    `json:"employee_id"`
	Name             string `json:"name"`
	DriveTimeMinutes int    `json:"drive_time_minutes"`
	RouteOrigin      string `json:"route_origin"`
}

type FeasibleEmployeesResponse struct {
	Date       string              `json:"date"`
	SlotID     int                 `json:"slot_id"`
	CategoryID int                 `json:"category_id"`
	Candidates []CandidateResponse `json:"candidates"`
}

// One (category, candidate list) cell in either grid shape.
type CategoryCellResponse struct {
	CategoryID int                 `json:"category_id"`
	Name       string              `json:"name"`
	Candidates []CandidateResponse `json:"candidates"`
}

type SlotRowResponse struct {
	SlotID     int                    `json:"slot_id"`
	Label      string                 `json:"label"`
	Categories []CategoryCellResponse `json:"categories"`
}

// Full day's grid: every slot x category for one date.
type ByDateGridResponse struct {
	Date  string            `json:"date"`
	Slots []SlotRowResponse `json:"slots"`
}

type DayRowResponse struct {
	Date       string                 `json:"date"`
	Categories []CategoryCellResponse `json:"categories"`
}

// Multi-week grid: every day x category for one fixed slot.
type BySlotGridResponse struct {
	SlotID int              `json:"slot_id"`
	Days   []DayRowResponse `json:"days"`
}
