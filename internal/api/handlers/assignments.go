package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/api/dto"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/domain"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/services"
)

// AssignmentWriter is the write surface the booking collaborator uses
// once a booking is confirmed or cancelled.
type AssignmentWriter interface {
	Create(ctx context.Context, req services.CreateAssignmentRequest) (domain.JobAssignment, error)
	Cancel(ctx context.Context, assignmentID int) error
}

type AssignmentHandler struct {
	Assignments AssignmentWriter
}

// Handle dispatches POST (create on booking confirmation) and DELETE
// (cancellation) for /assignments.
func (h *AssignmentHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodDelete:
		h.cancel(w, r)
	default:
		w.Header().Set("Allow", "POST, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *AssignmentHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAssignmentRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.EmployeeID < 1 || req.BookingID < 1 {
		writeError(w, r, http.StatusBadRequest, "employee_id and booking_id are required")
		return
	}

	created, err := h.Assignments.Create(r.Context(), services.CreateAssignmentRequest{
		EmployeeID:     req.EmployeeID,
		BookingID:      req.BookingID,
		JobsiteAddress: req.JobsiteAddress,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.AssignmentResponse{
		AssignmentID:   created.AssignmentID,
		EmployeeID:     created.EmployeeID,
		BookingID:      created.BookingID,
		Date:           created.Date.String(),
		SlotID:         created.SlotID,
		JobsiteAddress: created.JobsiteAddress,
	})
}

func (h *AssignmentHandler) cancel(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := strconv.Atoi(r.URL.Query().Get("assignment_id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "assignment_id must be an integer")
		return
	}

	if err := h.Assignments.Cancel(r.Context(), assignmentID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
