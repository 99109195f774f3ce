package handler

import (
	"net/http"

	"github.com/pkordes/travelpal/internal/middleware"
)

// GetTripSummary handles GET /trips/{tripId}/summary.
// Returns the trip, its rollup, and every stop placed on the timeline.
func (s *Server) GetTripSummary(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.reports.Summary(r.Context(), middleware.UserIDFromContext(r.Context()), id)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, reportToResponse(report))
}
