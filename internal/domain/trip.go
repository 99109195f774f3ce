// Package domain contains the core data types for the travelpal application.
// This package holds no I/O and is imported by every other internal package
// (itinerary, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is an itinerary owned by a single user.
// A trip is the top-level aggregate; stops belong to a trip and are deleted with it.
type Trip struct {
	ID        uuid.UUID
	Name      string
	OwnerID   uuid.UUID
	Travelers int // always >= 1 once persisted
	StartDate time.Time
	Public    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TripFilter narrows a trip listing to what a viewer is allowed to see.
// The zero ViewerID is an anonymous caller, who only ever sees public trips.
type TripFilter struct {
	ViewerID  uuid.UUID
	OwnedOnly bool
}
