package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/travelpal/internal/domain"
	"github.com/pkordes/travelpal/internal/itinerary"
	"github.com/pkordes/travelpal/internal/repo"
)

const defaultOverviewConcurrency = 8

// ReportService builds trip summaries from stored trips and stops.
// Summaries are computed on every call and never written back.
type ReportService struct {
	trips repo.TripRepo
	stops repo.StopRepo
	limit int
}

// NewReportService constructs a ReportService. concurrency bounds how many
// trips Overviews summarizes at once; values below 1 use the default.
func NewReportService(trips repo.TripRepo, stops repo.StopRepo, concurrency int) *ReportService {
	if concurrency < 1 {
		concurrency = defaultOverviewConcurrency
	}
	return &ReportService{trips: trips, stops: stops, limit: concurrency}
}

// Summary returns the trip, its rollup, and its derived stops in visitation order.
// Returns domain.ErrNotFound if the trip does not exist or is not visible to viewer.
// A trip without stops still yields a summary.
func (s *ReportService) Summary(ctx context.Context, viewer, tripID uuid.UUID) (domain.TripReport, error) {
	trip, err := loadVisible(ctx, s.trips, viewer, tripID)
	if err != nil {
		return domain.TripReport{}, fmt.Errorf("service.ReportService.Summary: %w", err)
	}
	stops, err := s.stops.ListByTripID(ctx, trip.ID)
	if err != nil {
		return domain.TripReport{}, fmt.Errorf("service.ReportService.Summary: %w", err)
	}
	summary, derived := itinerary.Compute(trip.StartDate, trip.Travelers, stops)
	return domain.TripReport{Trip: trip, Summary: summary, Stops: derived}, nil
}

// Overviews summarizes each trip concurrently and returns the results in input order.
// The caller is expected to have filtered trips for visibility already.
// The first fetch error, or a stop the calculator rejects, cancels the
// remaining work and is returned as an error.
func (s *ReportService) Overviews(ctx context.Context, trips []domain.Trip) ([]domain.TripOverview, error) {
	out := make([]domain.TripOverview, len(trips))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, trip := range trips {
		g.Go(func() (err error) {
			// Compute panics on corrupt stops; the HTTP recoverer never sees
			// this goroutine, so report the panic as an error.
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("trip %s: %v", trip.ID, r)
				}
			}()
			stops, err := s.stops.ListByTripID(ctx, trip.ID)
			if err != nil {
				return fmt.Errorf("trip %s: %w", trip.ID, err)
			}
			summary, _ := itinerary.Compute(trip.StartDate, trip.Travelers, stops)
			out[i] = domain.TripOverview{Trip: trip, Summary: summary}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service.ReportService.Overviews: %w", err)
	}
	return out, nil
}
