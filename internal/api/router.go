package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/api/handlers"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay
// unaware of concrete adapters).
func NewRouter(matcher handlers.AvailabilityService, assignments handlers.AssignmentWriter) http.Handler {
	mux := http.NewServeMux()

	availabilityHandler := &handlers.AvailabilityHandler{Matcher: matcher}
	assignmentHandler := &handlers.AssignmentHandler{Assignments: assignments}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/availability", availabilityHandler.FeasibleEmployees)
	mux.HandleFunc("/availability/by-date", availabilityHandler.ByDateGrid)
	mux.HandleFunc("/availability/by-slot", availabilityHandler.BySlotGrid)
	mux.HandleFunc("/assignments", assignmentHandler.Handle)

	return requestIDMiddleware(loggingMiddleware(mux))
}
