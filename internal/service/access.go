package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pkordes/travelpal/internal/domain"
	"github.com/pkordes/travelpal/internal/repo"
)

// canView reports whether viewer may read trip. uuid.Nil is an anonymous viewer.
func canView(trip domain.Trip, viewer uuid.UUID) bool {
	return trip.Public || (viewer != uuid.Nil && trip.OwnerID == viewer)
}

// loadVisible fetches a trip the viewer can read.
// A private trip belonging to someone else is reported as domain.ErrNotFound
// so its existence is not leaked.
func loadVisible(ctx context.Context, trips repo.TripRepo, viewer, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if !canView(trip, viewer) {
		return domain.Trip{}, domain.ErrNotFound
	}
	return trip, nil
}

// loadOwned fetches a trip the caller is allowed to change.
// Returns domain.ErrForbidden when the trip is visible but owned by someone else.
func loadOwned(ctx context.Context, trips repo.TripRepo, caller, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := loadVisible(ctx, trips, caller, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if caller == uuid.Nil || trip.OwnerID != caller {
		return domain.Trip{}, domain.ErrForbidden
	}
	return trip, nil
}

// titleCase trims s and capitalises each word ("new york" -> "New York").
// A Caser is stateful, so each call builds its own.
func titleCase(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}
