package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travelpal/internal/domain"
)

const exportDateLayout = "2006-01-02"

// ExportService flattens a trip report into itinerary rows for download.
type ExportService struct {
	reports *ReportService
}

// NewExportService constructs an ExportService that reads through reports.
func NewExportService(reports *ReportService) *ExportService {
	return &ExportService{reports: reports}
}

// Itinerary returns one ItineraryRow per stop in visitation order.
// A trip with no stops returns an empty, non-nil slice.
func (s *ExportService) Itinerary(ctx context.Context, viewer, tripID uuid.UUID) ([]domain.ItineraryRow, error) {
	report, err := s.reports.Summary(ctx, viewer, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Itinerary: %w", err)
	}

	rows := make([]domain.ItineraryRow, 0, len(report.Stops))
	for i, st := range report.Stops {
		rows = append(rows, domain.ItineraryRow{
			TripID:         report.Trip.ID.String(),
			TripName:       report.Trip.Name,
			Travelers:      report.Trip.Travelers,
			Sequence:       i + 1,
			Country:        st.Country,
			CityTown:       st.CityTown,
			Currency:       st.Currency,
			StartDate:      st.StartDate.Format(exportDateLayout),
			EndDate:        st.EndDate.Format(exportDateLayout),
			Nights:         st.Duration,
			AccomPerPerson: domain.Money(st.PerPerson.Accommodation),
			FoodPerPerson:  domain.Money(st.PerPerson.Food),
			OtherPerPerson: domain.Money(st.PerPerson.Other),
			TotalPerPerson: domain.Money(st.PerPerson.Sum()),
			TotalCost:      domain.Money(st.Total.Sum()),
		})
	}
	return rows, nil
}
