package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travelpal/internal/domain"
	"github.com/pkordes/travelpal/internal/repo"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockStopRepo is a hand-written test double for repo.StopRepo.
type mockStopRepo struct {
	create            func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	getByID           func(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error)
	listByTripID      func(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	listByTripIDPaged func(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Stop, int64, error)
	update            func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	delete            func(ctx context.Context, tripID, stopID uuid.UUID) error
}

func (m *mockStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	return m.create(ctx, stop)
}
func (m *mockStopRepo) GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
	return m.getByID(ctx, tripID, stopID)
}
func (m *mockStopRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockStopRepo) ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Stop, int64, error) {
	return m.listByTripIDPaged(ctx, tripID, p)
}
func (m *mockStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	return m.update(ctx, stop)
}
func (m *mockStopRepo) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	return m.delete(ctx, tripID, stopID)
}

// compile-time check: mockStopRepo must satisfy repo.StopRepo.
var _ repo.StopRepo = (*mockStopRepo)(nil)

// ---- shared fixtures -------------------------------------------------------

func ownedTrip(owner uuid.UUID, public bool) domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		Name:      "Europe Tour",
		OwnerID:   owner,
		Travelers: 2,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Public:    public,
	}
}

// tripLookup returns a TripRepo whose GetByID serves only trip.
func tripLookup(trip domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			if id != trip.ID {
				return domain.Trip{}, domain.ErrNotFound
			}
			return trip, nil
		},
	}
}

func stopAt(tripID uuid.UUID, country, city string, nights int, accom, food, other string) domain.Stop {
	return domain.Stop{
		ID:                uuid.New(),
		TripID:            tripID,
		Country:           country,
		CityTown:          city,
		Duration:          nights,
		Currency:          "EUR",
		CostAccommodation: decimal.RequireFromString(accom),
		CostFood:          decimal.RequireFromString(food),
		CostOther:         decimal.RequireFromString(other),
	}
}
