package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelpal/internal/domain"
	"github.com/pkordes/travelpal/internal/handler"
	"github.com/pkordes/travelpal/internal/middleware"
)

// ---- servicer mocks --------------------------------------------------------
// Each mock is a set of function fields; set only the ones your test needs.

type mockTripServicer struct {
	create    func(ctx context.Context, owner uuid.UUID, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, viewer, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, caller uuid.UUID, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, caller, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, owner uuid.UUID, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, owner, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, viewer, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, viewer, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockTripServicer) Update(ctx context.Context, caller uuid.UUID, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, caller, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, caller, id uuid.UUID) error {
	return m.delete(ctx, caller, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockStopServicer struct {
	create            func(ctx context.Context, caller uuid.UUID, stop domain.Stop) (domain.Stop, error)
	getByID           func(ctx context.Context, viewer, tripID, stopID uuid.UUID) (domain.Stop, error)
	listByTripIDPaged func(ctx context.Context, viewer, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Stop, int64, error)
	update            func(ctx context.Context, caller uuid.UUID, stop domain.Stop) (domain.Stop, error)
	delete            func(ctx context.Context, caller, tripID, stopID uuid.UUID) error
	duplicate         func(ctx context.Context, caller, tripID, stopID uuid.UUID) (domain.Stop, error)
}

func (m *mockStopServicer) Create(ctx context.Context, caller uuid.UUID, s domain.Stop) (domain.Stop, error) {
	return m.create(ctx, caller, s)
}
func (m *mockStopServicer) GetByID(ctx context.Context, viewer, tripID, stopID uuid.UUID) (domain.Stop, error) {
	return m.getByID(ctx, viewer, tripID, stopID)
}
func (m *mockStopServicer) ListByTripIDPaged(ctx context.Context, viewer, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Stop, int64, error) {
	return m.listByTripIDPaged(ctx, viewer, tripID, p)
}
func (m *mockStopServicer) Update(ctx context.Context, caller uuid.UUID, s domain.Stop) (domain.Stop, error) {
	return m.update(ctx, caller, s)
}
func (m *mockStopServicer) Delete(ctx context.Context, caller, tripID, stopID uuid.UUID) error {
	return m.delete(ctx, caller, tripID, stopID)
}
func (m *mockStopServicer) Duplicate(ctx context.Context, caller, tripID, stopID uuid.UUID) (domain.Stop, error) {
	return m.duplicate(ctx, caller, tripID, stopID)
}

var _ handler.StopServicer = (*mockStopServicer)(nil)

type mockReportServicer struct {
	summary   func(ctx context.Context, viewer, tripID uuid.UUID) (domain.TripReport, error)
	overviews func(ctx context.Context, trips []domain.Trip) ([]domain.TripOverview, error)
}

func (m *mockReportServicer) Summary(ctx context.Context, viewer, tripID uuid.UUID) (domain.TripReport, error) {
	return m.summary(ctx, viewer, tripID)
}
func (m *mockReportServicer) Overviews(ctx context.Context, trips []domain.Trip) ([]domain.TripOverview, error) {
	if m.overviews == nil {
		// Default: pair every trip with an empty summary.
		out := make([]domain.TripOverview, len(trips))
		for i, t := range trips {
			out[i] = domain.TripOverview{Trip: t, Summary: domain.TripSummary{StartDate: t.StartDate, EndDate: t.StartDate}}
		}
		return out, nil
	}
	return m.overviews(ctx, trips)
}

var _ handler.ReportServicer = (*mockReportServicer)(nil)

type mockExportServicer struct {
	itinerary func(ctx context.Context, viewer, tripID uuid.UUID) ([]domain.ItineraryRow, error)
}

func (m *mockExportServicer) Itinerary(ctx context.Context, viewer, tripID uuid.UUID) ([]domain.ItineraryRow, error) {
	return m.itinerary(ctx, viewer, tripID)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- wiring ----------------------------------------------------------------

// deps collects the mocks for a single test; nil fields get empty mocks.
type deps struct {
	trips   *mockTripServicer
	stops   *mockStopServicer
	reports *mockReportServicer
	export  *mockExportServicer
	user    uuid.UUID // uuid.Nil for an anonymous caller
}

// newHTTPHandler wires a Server with the given mocks into its router, with
// the caller placed on the context the way middleware.NewAuthenticator would.
func newHTTPHandler(d deps) http.Handler {
	if d.trips == nil {
		d.trips = &mockTripServicer{}
	}
	if d.stops == nil {
		d.stops = &mockStopServicer{}
	}
	if d.reports == nil {
		d.reports = &mockReportServicer{}
	}
	if d.export == nil {
		d.export = &mockExportServicer{}
	}
	routes := handler.NewServer(d.trips, d.stops, d.reports, d.export, nil).Routes()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if d.user != uuid.Nil {
			r = r.WithContext(middleware.WithUserID(r.Context(), d.user))
		}
		routes.ServeHTTP(w, r)
	})
}

// ---- fixtures --------------------------------------------------------------

func tripFixture(owner uuid.UUID) domain.Trip {
	now := time.Now().UTC()
	return domain.Trip{
		ID:        uuid.New(),
		Name:      "Europe Tour",
		OwnerID:   owner,
		Travelers: 2,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Public:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func stopFixture(tripID uuid.UUID) domain.Stop {
	return domain.Stop{
		ID:                uuid.New(),
		TripID:            tripID,
		Country:           "Ireland",
		CityTown:          "Dublin",
		Duration:          2,
		Currency:          "EUR",
		CostAccommodation: decimal.RequireFromString("50.25"),
		CostFood:          decimal.RequireFromString("20"),
		CostOther:         decimal.RequireFromString("0.1"),
		Position:          1,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, body *bytes.Buffer) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}
