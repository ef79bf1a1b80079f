package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps input errors to caller-facing statuses.
// Anything unrecognized is an internal error and logs the cause; the
// body stays generic. Estimator failures never reach this point, they
// degrade individual candidates inside the matcher instead.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrEmptyAddress),
		errors.Is(err, domain.ErrCategoryMismatch):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrUnknownSlot),
		errors.Is(err, domain.ErrUnknownEmployee),
		errors.Is(err, domain.ErrUnknownBooking),
		errors.Is(err, domain.ErrUnknownAssignment):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSlotTaken):
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
