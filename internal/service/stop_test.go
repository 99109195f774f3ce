package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelpal/internal/domain"
	"github.com/pkordes/travelpal/internal/service"
)

// ---- helpers ---------------------------------------------------------------

func validStop(tripID uuid.UUID) domain.Stop {
	return stopAt(tripID, "  ireland ", "dublin", 2, "50.25", "20", "0.10")
}

func echoStopRepo() *mockStopRepo {
	return &mockStopRepo{
		create: func(_ context.Context, s domain.Stop) (domain.Stop, error) { return s, nil },
		update: func(_ context.Context, s domain.Stop) (domain.Stop, error) { return s, nil },
	}
}

// ---- Create ----------------------------------------------------------------

func TestStopService_Create_Normalizes(t *testing.T) {
	owner := uuid.New()
	trip := ownedTrip(owner, false)
	svc := service.NewStopService(tripLookup(trip), echoStopRepo())

	in := validStop(trip.ID)
	in.Currency = " eur"

	got, err := svc.Create(context.Background(), owner, in)

	require.NoError(t, err)
	assert.Equal(t, "Ireland", got.Country)
	assert.Equal(t, "Dublin", got.CityTown)
	assert.Equal(t, "EUR", got.Currency)
}

func TestStopService_Create_TripNotFound(t *testing.T) {
	svc := service.NewStopService(tripLookup(ownedTrip(uuid.New(), true)), &mockStopRepo{})

	_, err := svc.Create(context.Background(), uuid.New(), validStop(uuid.New()))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStopService_Create_NotOwner(t *testing.T) {
	trip := ownedTrip(uuid.New(), true)
	svc := service.NewStopService(tripLookup(trip), &mockStopRepo{})

	_, err := svc.Create(context.Background(), uuid.New(), validStop(trip.ID))

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestStopService_Create_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.Stop)
	}{
		{"blank country", func(s *domain.Stop) { s.Country = " " }},
		{"blank city", func(s *domain.Stop) { s.CityTown = "" }},
		{"short currency", func(s *domain.Stop) { s.Currency = "EU" }},
		{"numeric currency", func(s *domain.Stop) { s.Currency = "E1R" }},
		{"zero nights", func(s *domain.Stop) { s.Duration = 0 }},
		{"negative accommodation", func(s *domain.Stop) { s.CostAccommodation = decimal.RequireFromString("-1") }},
		{"three decimal places", func(s *domain.Stop) { s.CostFood = decimal.RequireFromString("1.005") }},
		{"negative other", func(s *domain.Stop) { s.CostOther = decimal.RequireFromString("-0.01") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			owner := uuid.New()
			trip := ownedTrip(owner, false)
			svc := service.NewStopService(tripLookup(trip), echoStopRepo())
			stop := validStop(trip.ID)
			tc.mutate(&stop)

			_, err := svc.Create(context.Background(), owner, stop)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestStopService_Create_RepoError(t *testing.T) {
	owner := uuid.New()
	trip := ownedTrip(owner, false)
	dbErr := errors.New("db down")
	svc := service.NewStopService(tripLookup(trip), &mockStopRepo{
		create: func(_ context.Context, _ domain.Stop) (domain.Stop, error) { return domain.Stop{}, dbErr },
	})

	_, err := svc.Create(context.Background(), owner, validStop(trip.ID))

	assert.ErrorIs(t, err, dbErr)
}

// ---- Reads -----------------------------------------------------------------

func TestStopService_GetByID_PrivateTripHidden(t *testing.T) {
	trip := ownedTrip(uuid.New(), false)
	svc := service.NewStopService(tripLookup(trip), &mockStopRepo{})

	_, err := svc.GetByID(context.Background(), uuid.Nil, trip.ID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStopService_GetByID_PublicTrip(t *testing.T) {
	trip := ownedTrip(uuid.New(), true)
	stop := validStop(trip.ID)
	svc := service.NewStopService(tripLookup(trip), &mockStopRepo{
		getByID: func(_ context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
			if tripID != trip.ID || stopID != stop.ID {
				return domain.Stop{}, domain.ErrNotFound
			}
			return stop, nil
		},
	})

	got, err := svc.GetByID(context.Background(), uuid.Nil, trip.ID, stop.ID)

	require.NoError(t, err)
	assert.Equal(t, stop.ID, got.ID)
}

func TestStopService_ListByTripIDPaged_NilBecomesEmpty(t *testing.T) {
	trip := ownedTrip(uuid.New(), true)
	svc := service.NewStopService(tripLookup(trip), &mockStopRepo{
		listByTripIDPaged: func(_ context.Context, _ uuid.UUID, _ domain.PaginationParams) ([]domain.Stop, int64, error) {
			return nil, 0, nil
		},
	})

	got, total, err := svc.ListByTripIDPaged(context.Background(), uuid.Nil, trip.ID, domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Zero(t, total)
}

// ---- Update / Delete -------------------------------------------------------

func TestStopService_Update_OK(t *testing.T) {
	owner := uuid.New()
	trip := ownedTrip(owner, false)
	svc := service.NewStopService(tripLookup(trip), echoStopRepo())

	stop := validStop(trip.ID)
	stop.Duration = 5

	got, err := svc.Update(context.Background(), owner, stop)

	require.NoError(t, err)
	assert.Equal(t, 5, got.Duration)
}

func TestStopService_Update_Validation(t *testing.T) {
	owner := uuid.New()
	trip := ownedTrip(owner, false)
	svc := service.NewStopService(tripLookup(trip), echoStopRepo())

	stop := validStop(trip.ID)
	stop.Currency = ""

	_, err := svc.Update(context.Background(), owner, stop)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStopService_Delete(t *testing.T) {
	owner := uuid.New()
	trip := ownedTrip(owner, true)
	stopID := uuid.New()
	var gotTrip, gotStop uuid.UUID
	svc := service.NewStopService(tripLookup(trip), &mockStopRepo{
		delete: func(_ context.Context, tripID, sID uuid.UUID) error {
			gotTrip, gotStop = tripID, sID
			return nil
		},
	})

	require.NoError(t, svc.Delete(context.Background(), owner, trip.ID, stopID))
	assert.Equal(t, trip.ID, gotTrip)
	assert.Equal(t, stopID, gotStop)

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New(), trip.ID, stopID), domain.ErrForbidden)
}

// ---- Duplicate -------------------------------------------------------------

func TestStopService_Duplicate_AppendsCopy(t *testing.T) {
	owner := uuid.New()
	trip := ownedTrip(owner, false)
	src := validStop(trip.ID)
	src.Position = 1

	var created domain.Stop
	svc := service.NewStopService(tripLookup(trip), &mockStopRepo{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.Stop, error) { return src, nil },
		create: func(_ context.Context, s domain.Stop) (domain.Stop, error) {
			created = s
			s.ID = uuid.New()
			s.Position = 2
			return s, nil
		},
	})

	got, err := svc.Duplicate(context.Background(), owner, trip.ID, src.ID)

	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, created.ID, "copy gets a fresh id from the store")
	assert.Zero(t, created.Position, "store assigns the position")
	assert.Equal(t, src.CityTown, created.CityTown)
	assert.True(t, src.CostAccommodation.Equal(created.CostAccommodation))
	assert.NotEqual(t, src.ID, got.ID)
	assert.Equal(t, 2, got.Position)
}

func TestStopService_Duplicate_StopNotFound(t *testing.T) {
	owner := uuid.New()
	trip := ownedTrip(owner, false)
	svc := service.NewStopService(tripLookup(trip), &mockStopRepo{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.Stop, error) {
			return domain.Stop{}, domain.ErrNotFound
		},
	})

	_, err := svc.Duplicate(context.Background(), owner, trip.ID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
