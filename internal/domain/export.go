package domain

import "github.com/shopspring/decimal"

// Money is an amount that renders with exactly two decimal places in CSV and
// JSON while keeping its decimal value for numeric renderers.
type Money decimal.Decimal

// String returns m rounded to two decimal places, e.g. "320.00".
func (m Money) String() string {
	return decimal.Decimal(m).StringFixed(2)
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (m Money) MarshalCSV() (string, error) {
	return m.String(), nil
}

// MarshalJSON encodes m as a quoted fixed two-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// Float64 returns m as a float for spreadsheet cells.
func (m Money) Float64() float64 {
	return decimal.Decimal(m).InexactFloat64()
}

// ItineraryRow is a single row of a trip itinerary export.
// It is a flat, denormalized view: one row per stop with trip fields repeated.
// Money columns render as fixed two-decimal strings so every text format agrees.
// A trip with no stops exports no rows.
type ItineraryRow struct {
	TripID         string `csv:"trip_id"          json:"trip_id"`
	TripName       string `csv:"trip_name"        json:"trip_name"`
	Travelers      int    `csv:"travelers"        json:"travelers"`
	Sequence       int    `csv:"sequence"         json:"sequence"`
	Country        string `csv:"country"          json:"country"`
	CityTown       string `csv:"city_town"        json:"city_town"`
	Currency       string `csv:"currency"         json:"currency"`
	StartDate      string `csv:"start_date"       json:"start_date"` // "2006-01-02"
	EndDate        string `csv:"end_date"         json:"end_date"`
	Nights         int    `csv:"nights"           json:"nights"`
	AccomPerPerson Money  `csv:"accommodation_pp" json:"accommodation_pp"`
	FoodPerPerson  Money  `csv:"food_pp"          json:"food_pp"`
	OtherPerPerson Money  `csv:"other_pp"         json:"other_pp"`
	TotalPerPerson Money  `csv:"total_pp"         json:"total_pp"`
	TotalCost      Money  `csv:"total"            json:"total"`
}
