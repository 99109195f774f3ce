package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/travelpal/internal/domain"
	"github.com/pkordes/travelpal/internal/middleware"
)

// CreateTrip handles POST /trips. The caller becomes the owner.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req TripRequest
	if status, err := decodeBody(r, &req); err != nil {
		requestError(w, status, err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), middleware.UserIDFromContext(r.Context()), req.toDomain(uuid.Nil))
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100) and
// ?show=all|mine. "all" lists public trips plus the caller's own; "mine"
// lists only the caller's. Each item carries its summary.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params, err := pagination(r)
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}
	show, err := queryString(r, "show")
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}
	viewer := middleware.UserIDFromContext(r.Context())
	filter := domain.TripFilter{ViewerID: viewer}
	switch show {
	case "", "all":
	case "mine":
		if viewer == uuid.Nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		filter.OwnedOnly = true
	default:
		requestError(w, http.StatusBadRequest, "invalid show: must be all or mine")
		return
	}

	trips, total, err := s.trips.ListPaged(r.Context(), filter, params)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	overviews, err := s.reports.Overviews(r.Context(), trips)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}

	data := make([]TripOverview, len(overviews))
	for i, ov := range overviews {
		data[i] = TripOverview{Trip: tripToResponse(ov.Trip), Summary: summaryToResponse(ov.Summary)}
	}
	writeJSON(w, http.StatusOK, Page[TripOverview]{Data: data, Pagination: paginationToResponse(params, total)})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}

	trip, err := s.trips.GetByID(r.Context(), middleware.UserIDFromContext(r.Context()), id)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req TripRequest
	if status, err := decodeBody(r, &req); err != nil {
		requestError(w, status, err.Error())
		return
	}

	updated, err := s.trips.Update(r.Context(), middleware.UserIDFromContext(r.Context()), req.toDomain(id))
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripId}. The trip's stops go with it.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.trips.Delete(r.Context(), middleware.UserIDFromContext(r.Context()), id); err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
