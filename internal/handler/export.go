package handler

import (
	"fmt"
	"net/http"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/pkordes/travelpal/internal/domain"
	"github.com/pkordes/travelpal/internal/middleware"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
	formatXLSX = "xlsx"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	itinerarySheet  = "Itinerary"
)

// itineraryColumns is the header row shared by the CSV and XLSX exports.
// It matches the csv tags on domain.ItineraryRow.
var itineraryColumns = []string{
	"trip_id", "trip_name", "travelers", "sequence", "country", "city_town", "currency",
	"start_date", "end_date", "nights",
	"accommodation_pp", "food_pp", "other_pp", "total_pp", "total",
}

// ExportTrip handles GET /trips/{tripId}/export.
// ?format=json (default), csv, or xlsx. One row per stop in visitation order.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}
	format, err := queryString(r, "format")
	if err != nil {
		requestError(w, http.StatusBadRequest, err.Error())
		return
	}
	if format == "" {
		format = formatJSON
	}
	if format != formatJSON && format != formatCSV && format != formatXLSX {
		requestError(w, http.StatusBadRequest, "invalid format: must be json, csv, or xlsx")
		return
	}

	rows, err := s.export.Itinerary(r.Context(), middleware.UserIDFromContext(r.Context()), id)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}

	switch format {
	case formatCSV:
		s.writeCSV(w, r, id, rows)
	case formatXLSX:
		s.writeXLSX(w, r, id, rows)
	default:
		writeJSON(w, http.StatusOK, rows)
	}
}

func attachment(w http.ResponseWriter, tripID uuid.UUID, ext string) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"itinerary-%s.%s\"", tripID, ext))
}

// writeCSV encodes rows with gocsv. An empty itinerary still gets its header row.
func (s *Server) writeCSV(w http.ResponseWriter, r *http.Request, tripID uuid.UUID, rows []domain.ItineraryRow) {
	body, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		s.serviceError(w, r, fmt.Errorf("handler.ExportTrip: csv: %w", err), "trip")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	attachment(w, tripID, formatCSV)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// writeXLSX renders rows as a single-sheet workbook. Money columns are
// written as numbers with a two-decimal format so spreadsheets can sum them.
func (s *Server) writeXLSX(w http.ResponseWriter, r *http.Request, tripID uuid.UUID, rows []domain.ItineraryRow) {
	f, err := buildWorkbook(rows)
	if err != nil {
		s.serviceError(w, r, fmt.Errorf("handler.ExportTrip: xlsx: %w", err), "trip")
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Content-Type", xlsxContentType)
	attachment(w, tripID, formatXLSX)
	w.WriteHeader(http.StatusOK)
	if err := f.Write(w); err != nil {
		s.log.ErrorContext(r.Context(), "xlsx write failed", "error", err)
	}
}

func buildWorkbook(rows []domain.ItineraryRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", itinerarySheet); err != nil {
		return nil, err
	}

	header := make([]any, len(itineraryColumns))
	for i, c := range itineraryColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(itinerarySheet, "A1", &header); err != nil {
		return nil, err
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		values := []any{
			row.TripID, row.TripName, row.Travelers, row.Sequence, row.Country, row.CityTown, row.Currency,
			row.StartDate, row.EndDate, row.Nights,
		}
		for _, m := range []domain.Money{row.AccomPerPerson, row.FoodPerPerson, row.OtherPerPerson, row.TotalPerPerson, row.TotalCost} {
			values = append(values, m.Float64())
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(itinerarySheet, cell, &values); err != nil {
			return nil, err
		}
	}

	if len(rows) > 0 {
		first, _ := excelize.CoordinatesToCellName(11, 2)
		last, _ := excelize.CoordinatesToCellName(len(itineraryColumns), len(rows)+1)
		if err := f.SetCellStyle(itinerarySheet, first, last, moneyStyle); err != nil {
			return nil, err
		}
	}
	return f, nil
}
