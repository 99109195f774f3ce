// Package handler implements the HTTP handlers for the travelpal API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, trip.go, stop.go, summary.go, export.go) but share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travelpal/internal/domain"
	"github.com/pkordes/travelpal/internal/middleware"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, owner uuid.UUID, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, viewer, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, caller uuid.UUID, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, caller, id uuid.UUID) error
}

// StopServicer defines the business operations the stop handlers depend on.
type StopServicer interface {
	Create(ctx context.Context, caller uuid.UUID, stop domain.Stop) (domain.Stop, error)
	GetByID(ctx context.Context, viewer, tripID, stopID uuid.UUID) (domain.Stop, error)
	ListByTripIDPaged(ctx context.Context, viewer, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Stop, int64, error)
	Update(ctx context.Context, caller uuid.UUID, stop domain.Stop) (domain.Stop, error)
	Delete(ctx context.Context, caller, tripID, stopID uuid.UUID) error
	Duplicate(ctx context.Context, caller, tripID, stopID uuid.UUID) (domain.Stop, error)
}

// ReportServicer computes trip summaries.
type ReportServicer interface {
	Summary(ctx context.Context, viewer, tripID uuid.UUID) (domain.TripReport, error)
	Overviews(ctx context.Context, trips []domain.Trip) ([]domain.TripOverview, error)
}

// ExportServicer flattens a trip into itinerary rows.
type ExportServicer interface {
	Itinerary(ctx context.Context, viewer, tripID uuid.UUID) ([]domain.ItineraryRow, error)
}

// Server holds the handler dependencies. Wire it in main.go via Routes.
type Server struct {
	trips   TripServicer
	stops   StopServicer
	reports ReportServicer
	export  ExportServicer
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger discards handler error logs.
func NewServer(trips TripServicer, stops StopServicer, reports ReportServicer, export ExportServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{trips: trips, stops: stops, reports: reports, export: export, log: log}
}

// Routes returns the API router. Reads are open to anonymous callers; every
// write is wrapped in middleware.RequireUser. Caller identity is expected on
// the request context, placed there by middleware.NewAuthenticator.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.With(middleware.RequireUser).Post("/", s.CreateTrip)

		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Get("/summary", s.GetTripSummary)
			r.Get("/export", s.ExportTrip)
			r.With(middleware.RequireUser).Put("/", s.UpdateTrip)
			r.With(middleware.RequireUser).Delete("/", s.DeleteTrip)

			r.Route("/stops", func(r chi.Router) {
				r.Get("/", s.ListStops)
				r.With(middleware.RequireUser).Post("/", s.CreateStop)
				r.Get("/{stopId}", s.GetStop)
				r.With(middleware.RequireUser).Put("/{stopId}", s.UpdateStop)
				r.With(middleware.RequireUser).Delete("/{stopId}", s.DeleteStop)
				r.With(middleware.RequireUser).Post("/{stopId}/duplicate", s.DuplicateStop)
			})
		})
	})
	return r
}
