package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travelpal/internal/domain"
)

// Money is always rendered as a fixed two-decimal string ("12.50") so that
// clients never see float rounding.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toDate(t time.Time) openapi_types.Date {
	return openapi_types.Date{Time: t}
}

// ---- requests --------------------------------------------------------------

// TripRequest is the body of POST /trips and PUT /trips/{tripId}.
type TripRequest struct {
	Name      string             `json:"name"       validate:"required,max=200"`
	Travelers int                `json:"travelers"  validate:"required,min=1"`
	StartDate openapi_types.Date `json:"start_date" validate:"required"`
	Public    bool               `json:"public"`
}

func (req TripRequest) toDomain(id uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:        id,
		Name:      req.Name,
		Travelers: req.Travelers,
		StartDate: req.StartDate.Time,
		Public:    req.Public,
	}
}

// StopRequest is the body of POST and PUT on a trip's stops.
// Costs are per traveler per night.
type StopRequest struct {
	Country           string          `json:"country"            validate:"required,max=100"`
	CityTown          string          `json:"city_town"          validate:"required,max=100"`
	Duration          int             `json:"duration"           validate:"required,min=1"`
	Currency          string          `json:"currency"           validate:"required,len=3,alpha"`
	CostAccommodation decimal.Decimal `json:"cost_accommodation" validate:"money"`
	CostFood          decimal.Decimal `json:"cost_food"          validate:"money"`
	CostOther         decimal.Decimal `json:"cost_other"         validate:"money"`
}

func (req StopRequest) toDomain(tripID, stopID uuid.UUID) domain.Stop {
	return domain.Stop{
		ID:                stopID,
		TripID:            tripID,
		Country:           req.Country,
		CityTown:          req.CityTown,
		Duration:          req.Duration,
		Currency:          req.Currency,
		CostAccommodation: req.CostAccommodation,
		CostFood:          req.CostFood,
		CostOther:         req.CostOther,
	}
}

// ---- responses -------------------------------------------------------------

// Trip is the JSON representation of a stored trip.
type Trip struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	OwnerID   uuid.UUID          `json:"owner_id"`
	Travelers int                `json:"travelers"`
	StartDate openapi_types.Date `json:"start_date"`
	Public    bool               `json:"public"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func tripToResponse(t domain.Trip) Trip {
	return Trip{
		ID:        t.ID,
		Name:      t.Name,
		OwnerID:   t.OwnerID,
		Travelers: t.Travelers,
		StartDate: toDate(t.StartDate),
		Public:    t.Public,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// TripOverview is one item of GET /trips: the trip plus its rollup.
type TripOverview struct {
	Trip
	Summary Summary `json:"summary"`
}

// Stop is the JSON representation of a stored stop.
type Stop struct {
	ID                uuid.UUID `json:"id"`
	TripID            uuid.UUID `json:"trip_id"`
	Position          int       `json:"position"`
	Country           string    `json:"country"`
	CityTown          string    `json:"city_town"`
	Duration          int       `json:"duration"`
	Currency          string    `json:"currency"`
	CostAccommodation string    `json:"cost_accommodation"`
	CostFood          string    `json:"cost_food"`
	CostOther         string    `json:"cost_other"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func stopToResponse(s domain.Stop) Stop {
	return Stop{
		ID:                s.ID,
		TripID:            s.TripID,
		Position:          s.Position,
		Country:           s.Country,
		CityTown:          s.CityTown,
		Duration:          s.Duration,
		Currency:          s.Currency,
		CostAccommodation: money(s.CostAccommodation),
		CostFood:          money(s.CostFood),
		CostOther:         money(s.CostOther),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// Costs is a per-category breakdown.
type Costs struct {
	Accommodation string `json:"accommodation"`
	Food          string `json:"food"`
	Other         string `json:"other"`
	Sum           string `json:"sum"`
}

func costsToResponse(c domain.CategoryCosts) Costs {
	return Costs{
		Accommodation: money(c.Accommodation),
		Food:          money(c.Food),
		Other:         money(c.Other),
		Sum:           money(c.Sum()),
	}
}

// CurrencyTotal is the part of a trip's costs recorded in one currency.
type CurrencyTotal struct {
	Currency  string `json:"currency"`
	PerPerson Costs  `json:"per_person"`
	Total     Costs  `json:"total"`
}

// Summary is the JSON rollup of a trip. AverageCostPerNight is null when the
// trip has no nights.
type Summary struct {
	StartDate           openapi_types.Date `json:"start_date"`
	EndDate             openapi_types.Date `json:"end_date"`
	TotalDuration       int                `json:"total_duration"`
	TotalStops          int                `json:"total_stops"`
	TotalCountries      int                `json:"total_countries"`
	Countries           []string           `json:"countries"`
	PerPerson           Costs              `json:"per_person"`
	Total               Costs              `json:"total"`
	TotalCostPerPerson  string             `json:"total_cost_per_person"`
	TotalCost           string             `json:"total_cost"`
	AverageCostPerNight *string            `json:"average_cost_per_night"`
	ByCurrency          []CurrencyTotal    `json:"by_currency"`
}

func summaryToResponse(s domain.TripSummary) Summary {
	out := Summary{
		StartDate:          toDate(s.StartDate),
		EndDate:            toDate(s.EndDate),
		TotalDuration:      s.TotalDuration,
		TotalStops:         s.TotalStops,
		TotalCountries:     s.TotalCountries,
		Countries:          s.Countries,
		PerPerson:          costsToResponse(s.PerPerson),
		Total:              costsToResponse(s.Total),
		TotalCostPerPerson: money(s.TotalCostPerPerson),
		TotalCost:          money(s.TotalCost),
		ByCurrency:         make([]CurrencyTotal, 0, len(s.ByCurrency)),
	}
	if out.Countries == nil {
		out.Countries = []string{}
	}
	if s.AverageCostPerNight != nil {
		avg := money(*s.AverageCostPerNight)
		out.AverageCostPerNight = &avg
	}
	for _, c := range s.ByCurrency {
		out.ByCurrency = append(out.ByCurrency, CurrencyTotal{
			Currency:  c.Currency,
			PerPerson: costsToResponse(c.PerPerson),
			Total:     costsToResponse(c.Total),
		})
	}
	return out
}

// DerivedStop is a stop placed on the trip timeline with its costs worked out.
type DerivedStop struct {
	StopID    uuid.UUID          `json:"stop_id"`
	Country   string             `json:"country"`
	CityTown  string             `json:"city_town"`
	Currency  string             `json:"currency"`
	Duration  int                `json:"duration"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	PerPerson Costs              `json:"per_person"`
	Total     Costs              `json:"total"`
}

// TripReport is the body of GET /trips/{tripId}/summary.
type TripReport struct {
	Trip    Trip          `json:"trip"`
	Summary Summary       `json:"summary"`
	Stops   []DerivedStop `json:"stops"`
}

func reportToResponse(r domain.TripReport) TripReport {
	out := TripReport{
		Trip:    tripToResponse(r.Trip),
		Summary: summaryToResponse(r.Summary),
		Stops:   make([]DerivedStop, len(r.Stops)),
	}
	for i, st := range r.Stops {
		out.Stops[i] = DerivedStop{
			StopID:    st.StopID,
			Country:   st.Country,
			CityTown:  st.CityTown,
			Currency:  st.Currency,
			Duration:  st.Duration,
			StartDate: toDate(st.StartDate),
			EndDate:   toDate(st.EndDate),
			PerPerson: costsToResponse(st.PerPerson),
			Total:     costsToResponse(st.Total),
		}
	}
	return out
}

// Pagination describes the page returned alongside a list.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func paginationToResponse(p domain.PaginationParams, total int64) Pagination {
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: p.TotalPages(total)}
}

// Page is a paginated list body.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
