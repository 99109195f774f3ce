// Package itinerary places a trip's stops on its timeline and rolls up their
// costs. It is pure computation: no I/O, no shared state, safe to call
// concurrently for any number of trips.
package itinerary

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/travelpal/internal/domain"
)

// accumulator carries the running trip totals through one Compute call.
type accumulator struct {
	cursor     time.Time
	end        time.Time
	duration   int
	stops      int
	perPerson  domain.CategoryCosts
	total      domain.CategoryCosts
	countries  []string
	seen       map[string]struct{}
	byCurrency map[string]*domain.CurrencyTotal
}

func newAccumulator(start time.Time) *accumulator {
	return &accumulator{
		cursor:     start,
		end:        start,
		perPerson:  zeroCosts(),
		total:      zeroCosts(),
		countries:  []string{},
		seen:       make(map[string]struct{}),
		byCurrency: make(map[string]*domain.CurrencyTotal),
	}
}

// Compute folds stops, in visitation order, into per-stop derived records and
// a trip summary. Stops are laid back to back starting at start: each stop
// begins the day the previous one ends.
//
// Compute does not validate business rules, but it panics on data that would
// otherwise yield a plausible-looking wrong number: travelers below one, a
// negative duration or a negative cost.
func Compute(start time.Time, travelers int, stops []domain.Stop) (domain.TripSummary, []domain.StopDerived) {
	if travelers < 1 {
		panic(fmt.Sprintf("itinerary.Compute: travelers must be at least 1, got %d", travelers))
	}

	acc := newAccumulator(start)
	derived := make([]domain.StopDerived, 0, len(stops))
	for _, s := range stops {
		derived = append(derived, acc.add(s, travelers))
	}

	return acc.summary(start), derived
}

// add places s at the cursor, advances the cursor and accumulates its costs.
func (a *accumulator) add(s domain.Stop, travelers int) domain.StopDerived {
	mustBeValid(s)

	nights := decimal.NewFromInt(int64(s.Duration))
	people := decimal.NewFromInt(int64(travelers))

	pp := domain.CategoryCosts{
		Accommodation: nights.Mul(s.CostAccommodation),
		Food:          nights.Mul(s.CostFood),
		Other:         nights.Mul(s.CostOther),
	}
	total := domain.CategoryCosts{
		Accommodation: people.Mul(pp.Accommodation),
		Food:          people.Mul(pp.Food),
		Other:         people.Mul(pp.Other),
	}

	d := domain.StopDerived{
		StopID:    s.ID,
		Country:   s.Country,
		CityTown:  s.CityTown,
		Currency:  s.Currency,
		Duration:  s.Duration,
		StartDate: a.cursor,
		EndDate:   a.cursor.AddDate(0, 0, s.Duration),
		PerPerson: pp,
		Total:     total,
	}
	a.cursor = d.EndDate
	if d.EndDate.After(a.end) {
		a.end = d.EndDate
	}

	a.stops++
	a.duration += s.Duration
	a.perPerson = a.perPerson.Add(pp)
	a.total = a.total.Add(total)
	a.addCountry(s.Country)
	a.addCurrency(s.Currency, pp, total)

	return d
}

// addCountry records country unless an equivalent spelling was already seen.
// Membership is a set test, so revisiting a country later in the trip never
// counts it twice.
func (a *accumulator) addCountry(country string) {
	key := strings.ToLower(strings.TrimSpace(country))
	if _, ok := a.seen[key]; ok {
		return
	}
	a.seen[key] = struct{}{}
	a.countries = append(a.countries, strings.TrimSpace(country))
}

func (a *accumulator) addCurrency(code string, pp, total domain.CategoryCosts) {
	ct, ok := a.byCurrency[code]
	if !ok {
		ct = &domain.CurrencyTotal{Currency: code, PerPerson: zeroCosts(), Total: zeroCosts()}
		a.byCurrency[code] = ct
	}
	ct.PerPerson = ct.PerPerson.Add(pp)
	ct.Total = ct.Total.Add(total)
}

func (a *accumulator) summary(start time.Time) domain.TripSummary {
	s := domain.TripSummary{
		StartDate:          start,
		EndDate:            a.end,
		TotalDuration:      a.duration,
		TotalStops:         a.stops,
		TotalCountries:     len(a.countries),
		Countries:          a.countries,
		PerPerson:          a.perPerson,
		Total:              a.total,
		TotalCostPerPerson: a.perPerson.Sum(),
		TotalCost:          a.total.Sum(),
		ByCurrency:         make([]domain.CurrencyTotal, 0, len(a.byCurrency)),
	}
	if a.duration > 0 {
		avg := s.TotalCost.Div(decimal.NewFromInt(int64(a.duration)))
		s.AverageCostPerNight = &avg
	}

	for _, ct := range a.byCurrency {
		s.ByCurrency = append(s.ByCurrency, *ct)
	}
	slices.SortFunc(s.ByCurrency, func(x, y domain.CurrencyTotal) int {
		return strings.Compare(x.Currency, y.Currency)
	})
	return s
}

// mustBeValid panics when s breaks the calculator's input contract.
func mustBeValid(s domain.Stop) {
	if s.Duration < 0 {
		panic(fmt.Sprintf("itinerary.Compute: stop %s has negative duration %d", s.ID, s.Duration))
	}
	for name, c := range map[string]decimal.Decimal{
		"accommodation": s.CostAccommodation,
		"food":          s.CostFood,
		"other":         s.CostOther,
	} {
		if c.IsNegative() {
			panic(fmt.Sprintf("itinerary.Compute: stop %s has negative %s cost %s", s.ID, name, c))
		}
	}
}

func zeroCosts() domain.CategoryCosts {
	return domain.CategoryCosts{
		Accommodation: decimal.Zero,
		Food:          decimal.Zero,
		Other:         decimal.Zero,
	}
}
