package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stop is a single location visited during a trip.
// Costs are per traveler per night, in the stop's own Currency.
// Position is the visitation order within the trip and is assigned on insert.
type Stop struct {
	ID                uuid.UUID
	TripID            uuid.UUID
	Country           string
	CityTown          string
	Duration          int // nights
	Currency          string
	CostAccommodation decimal.Decimal
	CostFood          decimal.Decimal
	CostOther         decimal.Decimal
	Position          int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
