package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travelpal/internal/domain"
	"github.com/pkordes/travelpal/internal/repo"
)

// StopService implements business logic for Stop operations.
// It holds the trips repo because every stop operation is authorized
// against the parent trip first.
type StopService struct {
	trips repo.TripRepo
	stops repo.StopRepo
}

// NewStopService constructs a StopService backed by the provided repos.
func NewStopService(trips repo.TripRepo, stops repo.StopRepo) *StopService {
	return &StopService{trips: trips, stops: stops}
}

// Create validates the stop, verifies the caller owns the parent trip, then
// appends the stop to the end of the itinerary.
// Returns domain.ErrValidation if input violates business rules.
// Returns domain.ErrNotFound if the parent trip does not exist.
func (s *StopService) Create(ctx context.Context, caller uuid.UUID, stop domain.Stop) (domain.Stop, error) {
	if _, err := loadOwned(ctx, s.trips, caller, stop.TripID); err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Create: %w", err)
	}
	stop, err := normalizeStop(stop)
	if err != nil {
		return domain.Stop{}, err
	}
	result, err := s.stops.Create(ctx, stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single stop by ID, scoped to the given tripID.
// Returns domain.ErrNotFound if no stop with that ID exists under that trip.
func (s *StopService) GetByID(ctx context.Context, viewer, tripID, stopID uuid.UUID) (domain.Stop, error) {
	if _, err := loadVisible(ctx, s.trips, viewer, tripID); err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.GetByID: %w", err)
	}
	result, err := s.stops.GetByID(ctx, tripID, stopID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripIDPaged returns one page of a trip's stops in visitation order plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *StopService) ListByTripIDPaged(ctx context.Context, viewer, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Stop, int64, error) {
	if _, err := loadVisible(ctx, s.trips, viewer, tripID); err != nil {
		return nil, 0, fmt.Errorf("service.StopService.ListByTripIDPaged: %w", err)
	}
	stops, total, err := s.stops.ListByTripIDPaged(ctx, tripID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.StopService.ListByTripIDPaged: %w", err)
	}
	if stops == nil {
		stops = []domain.Stop{}
	}
	return stops, total, nil
}

// Update validates and persists changes to an existing stop.
// The stop keeps its position in the itinerary.
func (s *StopService) Update(ctx context.Context, caller uuid.UUID, stop domain.Stop) (domain.Stop, error) {
	if _, err := loadOwned(ctx, s.trips, caller, stop.TripID); err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}
	stop, err := normalizeStop(stop)
	if err != nil {
		return domain.Stop{}, err
	}
	result, err := s.stops.Update(ctx, stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a stop by ID, scoped to the given tripID.
// Returns domain.ErrNotFound if the stop does not exist under the given trip.
func (s *StopService) Delete(ctx context.Context, caller, tripID, stopID uuid.UUID) error {
	if _, err := loadOwned(ctx, s.trips, caller, tripID); err != nil {
		return fmt.Errorf("service.StopService.Delete: %w", err)
	}
	if err := s.stops.Delete(ctx, tripID, stopID); err != nil {
		return fmt.Errorf("service.StopService.Delete: %w", err)
	}
	return nil
}

// Duplicate copies a stop and appends the copy to the end of the itinerary.
func (s *StopService) Duplicate(ctx context.Context, caller, tripID, stopID uuid.UUID) (domain.Stop, error) {
	if _, err := loadOwned(ctx, s.trips, caller, tripID); err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Duplicate: %w", err)
	}
	src, err := s.stops.GetByID(ctx, tripID, stopID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Duplicate: %w", err)
	}
	dup := domain.Stop{
		TripID:            src.TripID,
		Country:           src.Country,
		CityTown:          src.CityTown,
		Duration:          src.Duration,
		Currency:          src.Currency,
		CostAccommodation: src.CostAccommodation,
		CostFood:          src.CostFood,
		CostOther:         src.CostOther,
	}
	result, err := s.stops.Create(ctx, dup)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Duplicate: %w", err)
	}
	return result, nil
}

// normalizeStop enforces business rules common to both Create and Update.
//   - Country and CityTown must be non-empty after trimming; both are stored title-cased.
//   - Currency must be three letters; it is stored upper-cased.
//   - Duration must be at least one night.
//   - Every cost must be non-negative with at most two decimal places.
func normalizeStop(stop domain.Stop) (domain.Stop, error) {
	stop.Country = titleCase(stop.Country)
	if stop.Country == "" {
		return domain.Stop{}, fmt.Errorf("%w: country is required", domain.ErrValidation)
	}
	stop.CityTown = titleCase(stop.CityTown)
	if stop.CityTown == "" {
		return domain.Stop{}, fmt.Errorf("%w: city_town is required", domain.ErrValidation)
	}
	stop.Currency = strings.ToUpper(strings.TrimSpace(stop.Currency))
	if !isCurrencyCode(stop.Currency) {
		return domain.Stop{}, fmt.Errorf("%w: currency must be a three-letter code", domain.ErrValidation)
	}
	if stop.Duration < 1 {
		return domain.Stop{}, fmt.Errorf("%w: duration must be at least 1 night", domain.ErrValidation)
	}
	costs := []struct {
		field string
		value decimal.Decimal
	}{
		{"cost_accommodation", stop.CostAccommodation},
		{"cost_food", stop.CostFood},
		{"cost_other", stop.CostOther},
	}
	for _, c := range costs {
		if c.value.IsNegative() {
			return domain.Stop{}, fmt.Errorf("%w: %s must not be negative", domain.ErrValidation, c.field)
		}
		if !c.value.Equal(c.value.Round(2)) {
			return domain.Stop{}, fmt.Errorf("%w: %s has more than two decimal places", domain.ErrValidation, c.field)
		}
	}
	return stop, nil
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
