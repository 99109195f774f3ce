package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryCosts holds one amount per cost category.
type CategoryCosts struct {
	Accommodation decimal.Decimal
	Food          decimal.Decimal
	Other         decimal.Decimal
}

// Sum returns the total across all three categories.
func (c CategoryCosts) Sum() decimal.Decimal {
	return c.Accommodation.Add(c.Food).Add(c.Other)
}

// Add returns the category-wise sum of c and o.
func (c CategoryCosts) Add(o CategoryCosts) CategoryCosts {
	return CategoryCosts{
		Accommodation: c.Accommodation.Add(o.Accommodation),
		Food:          c.Food.Add(o.Food),
		Other:         c.Other.Add(o.Other),
	}
}

// StopDerived is a stop placed on the trip timeline with its costs worked out.
// It is computed on every read and never persisted.
type StopDerived struct {
	StopID    uuid.UUID
	Country   string
	CityTown  string
	Currency  string
	Duration  int
	StartDate time.Time
	EndDate   time.Time
	PerPerson CategoryCosts
	Total     CategoryCosts
}

// CurrencyTotal is the sum of all stop costs recorded in one currency.
type CurrencyTotal struct {
	Currency  string
	PerPerson CategoryCosts
	Total     CategoryCosts
}

// TripSummary is the rollup of every stop on a trip.
//
// AverageCostPerNight is nil when the trip has no nights to divide by.
// EndDate equals StartDate for a trip without stops.
type TripSummary struct {
	StartDate           time.Time
	EndDate             time.Time
	TotalDuration       int
	TotalStops          int
	TotalCountries      int
	Countries           []string
	PerPerson           CategoryCosts
	Total               CategoryCosts
	TotalCostPerPerson  decimal.Decimal
	TotalCost           decimal.Decimal
	AverageCostPerNight *decimal.Decimal
	ByCurrency          []CurrencyTotal
}

// TripReport pairs a trip's stored fields with its computed summary and
// the derived stops in visitation order.
type TripReport struct {
	Trip    Trip
	Summary TripSummary
	Stops   []StopDerived
}

// TripOverview is the list-view pairing of a trip and its summary.
type TripOverview struct {
	Trip    Trip
	Summary TripSummary
}
