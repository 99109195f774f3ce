package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/travelpal/internal/middleware"
)

// CreateStop handles POST /trips/{tripId}/stops.
// The new stop is appended to the end of the itinerary.
func (s *Server) CreateStop(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req StopRequest
	if status, err := decodeBody(r, &req); err != nil {
		requestError(w, status, err.Error())
		return
	}

	created, err := s.stops.Create(r.Context(), middleware.UserIDFromContext(r.Context()), req.toDomain(tripID, uuid.Nil))
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, stopToResponse(created))
}

// ListStops handles GET /trips/{tripId}/stops in visitation order.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListStops(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}
	params, err := pagination(r)
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}

	stops, total, err := s.stops.ListByTripIDPaged(r.Context(), middleware.UserIDFromContext(r.Context()), tripID, params)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}

	data := make([]Stop, len(stops))
	for i, st := range stops {
		data[i] = stopToResponse(st)
	}
	writeJSON(w, http.StatusOK, Page[Stop]{Data: data, Pagination: paginationToResponse(params, total)})
}

// GetStop handles GET /trips/{tripId}/stops/{stopId}.
func (s *Server) GetStop(w http.ResponseWriter, r *http.Request) {
	tripID, stopID, err := tripStopIDs(r)
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}

	stop, err := s.stops.GetByID(r.Context(), middleware.UserIDFromContext(r.Context()), tripID, stopID)
	if err != nil {
		s.serviceError(w, r, err, "stop")
		return
	}
	writeJSON(w, http.StatusOK, stopToResponse(stop))
}

// UpdateStop handles PUT /trips/{tripId}/stops/{stopId}.
// The stop keeps its place in the itinerary.
func (s *Server) UpdateStop(w http.ResponseWriter, r *http.Request) {
	tripID, stopID, err := tripStopIDs(r)
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req StopRequest
	if status, err := decodeBody(r, &req); err != nil {
		requestError(w, status, err.Error())
		return
	}

	updated, err := s.stops.Update(r.Context(), middleware.UserIDFromContext(r.Context()), req.toDomain(tripID, stopID))
	if err != nil {
		s.serviceError(w, r, err, "stop")
		return
	}
	writeJSON(w, http.StatusOK, stopToResponse(updated))
}

// DeleteStop handles DELETE /trips/{tripId}/stops/{stopId}.
func (s *Server) DeleteStop(w http.ResponseWriter, r *http.Request) {
	tripID, stopID, err := tripStopIDs(r)
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.stops.Delete(r.Context(), middleware.UserIDFromContext(r.Context()), tripID, stopID); err != nil {
		s.serviceError(w, r, err, "stop")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateStop handles POST /trips/{tripId}/stops/{stopId}/duplicate.
// The copy is appended to the end of the itinerary.
func (s *Server) DuplicateStop(w http.ResponseWriter, r *http.Request) {
	tripID, stopID, err := tripStopIDs(r)
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}

	dup, err := s.stops.Duplicate(r.Context(), middleware.UserIDFromContext(r.Context()), tripID, stopID)
	if err != nil {
		s.serviceError(w, r, err, "stop")
		return
	}
	writeJSON(w, http.StatusCreated, stopToResponse(dup))
}
