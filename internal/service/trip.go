// Package service contains the business logic for the travelpal API.
// Services validate inputs, enforce ownership, and orchestrate repo calls.
// No queries live here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travelpal/internal/domain"
	"github.com/pkordes/travelpal/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip owned by owner.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, owner uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	if owner == uuid.Nil {
		return domain.Trip{}, domain.ErrForbidden
	}
	trip.OwnerID = owner
	trip, err := normalizeTrip(trip)
	if err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip the viewer may see.
func (s *TripService) GetByID(ctx context.Context, viewer, id uuid.UUID) (domain.Trip, error) {
	trip, err := loadVisible(ctx, s.repo, viewer, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// ListPaged returns one page of visible trips plus the total count across all pages.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	if f.ViewerID == uuid.Nil {
		f.OwnedOnly = false
	}
	trips, total, err := s.repo.ListPaged(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and persists changes to a trip the caller owns.
// The owner never changes.
func (s *TripService) Update(ctx context.Context, caller uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	existing, err := loadOwned(ctx, s.repo, caller, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	trip.OwnerID = existing.OwnerID
	trip, err = normalizeTrip(trip)
	if err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip the caller owns, together with its stops.
func (s *TripService) Delete(ctx context.Context, caller, id uuid.UUID) error {
	if _, err := loadOwned(ctx, s.repo, caller, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// normalizeTrip enforces business rules common to both Create and Update.
//   - Name must be non-empty after trimming; it is stored title-cased.
//   - Travelers must be at least 1.
//   - StartDate must be set.
func normalizeTrip(trip domain.Trip) (domain.Trip, error) {
	trip.Name = titleCase(trip.Name)
	if trip.Name == "" {
		return domain.Trip{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.Travelers < 1 {
		return domain.Trip{}, fmt.Errorf("%w: travelers must be at least 1", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() {
		return domain.Trip{}, fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	return trip, nil
}
