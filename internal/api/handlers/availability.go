package handlers

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/api/dto"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/domain"
)

// AvailabilityService is the matching engine surface the HTTP layer
// depends on.
type AvailabilityService interface {
	FeasibleEmployees(ctx context.Context, address string, date domain.Date, slotID int, categoryID int) ([]domain.CandidateResult, error)
	ByDateGrid(ctx context.Context, address string, date domain.Date) (map[domain.TimeSlot]map[domain.ServiceCategory][]domain.CandidateResult, error)
	BySlotGrid(ctx context.Context, address string, slotID int, start domain.Date, numDays int) (map[domain.Date]map[domain.ServiceCategory][]domain.CandidateResult, error)
}

// AvailabilityHandler exposes the read-only matching queries.
type AvailabilityHandler struct {
	Matcher AvailabilityService
}

// FeasibleEmployees answers one (date, slot, category, address) cell.
func (h *AvailabilityHandler) FeasibleEmployees(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()

	date, err := domain.ParseDate(q.Get("date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	slotID, err := strconv.Atoi(q.Get("slot_id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "slot_id must be an integer")
		return
	}

	categoryID, err := strconv.Atoi(q.Get("category_id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "category_id must be an integer")
		return
	}

	results, err := h.Matcher.FeasibleEmployees(r.Context(), q.Get("address"), date, slotID, categoryID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FeasibleEmployeesResponse{
		Date:       date.String(),
		SlotID:     slotID,
		CategoryID: categoryID,
		Candidates: toCandidateResponses(results),
	})
}

// ByDateGrid renders a full day: every slot x category cell at once.
func (h *AvailabilityHandler) ByDateGrid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()

	date, err := domain.ParseDate(q.Get("date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	grid, err := h.Matcher.ByDateGrid(r.Context(), q.Get("address"), date)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	slots := make([]domain.TimeSlot, 0, len(grid))
	for slot := range grid {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Ordinal < slots[j].Ordinal })

	res := dto.ByDateGridResponse{
		Date:  date.String(),
		Slots: make([]dto.SlotRowResponse, 0, len(slots)),
	}
	for _, slot := range slots {
		res.Slots = append(res.Slots, dto.SlotRowResponse{
			SlotID:     slot.SlotID,
			Label:      slot.Label,
			Categories: toCategoryCells(grid[slot]),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// BySlotGrid renders a fixed time window across a multi-week range.
func (h *AvailabilityHandler) BySlotGrid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()

	slotID, err := strconv.Atoi(q.Get("slot_id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "slot_id must be an integer")
		return
	}

	start := domain.DateOf(time.Now())
	if s := q.Get("start"); s != "" {
		start, err = domain.ParseDate(s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "start must be YYYY-MM-DD")
			return
		}
	}

	days := 0
	if d := q.Get("days"); d != "" {
		days, err = strconv.Atoi(d)
		if err != nil || days < 1 {
			writeError(w, r, http.StatusBadRequest, "days must be a positive integer")
			return
		}
	}

	grid, err := h.Matcher.BySlotGrid(r.Context(), q.Get("address"), slotID, start, days)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	dates := make([]domain.Date, 0, len(grid))
	for date := range grid {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	res := dto.BySlotGridResponse{
		SlotID: slotID,
		Days:   make([]dto.DayRowResponse, 0, len(dates)),
	}
	for _, date := range dates {
		res.Days = append(res.Days, dto.DayRowResponse{
			Date:       date.String(),
			Categories: toCategoryCells(grid[date]),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toCandidateResponses(results []domain.CandidateResult) []dto.CandidateResponse {
	out := make([]dto.CandidateResponse, 0, len(results))
	for _, c := range results {
		out = append(out, dto.CandidateResponse{
			EmployeeID:       c.Employee.EmployeeID,
			Name:             c.Employee.Name,
			DriveTimeMinutes: c.DriveTimeMinutes,
			RouteOrigin:      c.RouteOrigin,
		})
	}
	return out
}

func toCategoryCells(row map[domain.ServiceCategory][]domain.CandidateResult) []dto.CategoryCellResponse {
	categories := make([]domain.ServiceCategory, 0, len(row))
	for category := range row {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].CategoryID < categories[j].CategoryID })

	cells := make([]dto.CategoryCellResponse, 0, len(categories))
	for _, category := range categories {
		cells = append(cells, dto.CategoryCellResponse{
			CategoryID: category.CategoryID,
			Name:       category.Name,
			Candidates: toCandidateResponses(row[category]),
		})
	}
	return cells
}
