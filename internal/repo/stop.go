package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travelpal/internal/domain"
)

// StopRepo defines the persistence operations for Stops.
// All write and single-read operations are scoped by tripID to enforce ownership.
// Listings are in visitation order: position ascending, then created_at.
type StopRepo interface {
	// Create inserts a new stop at the end of its trip's itinerary and returns
	// the persisted record. Any Position on the input is ignored.
	Create(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// GetByID retrieves a single stop by its UUID, scoped to the given tripID.
	// Returns domain.ErrNotFound if no stop with that ID exists under that trip.
	GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error)

	// ListByTripID returns every stop of a trip in visitation order.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)

	// ListByTripIDPaged returns one page of a trip's stops in visitation order
	// and the total number of stops on the trip.
	ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Stop, int64, error)

	// Update overwrites the mutable fields of a stop, scoped to the given tripID.
	// Position is not changed. Returns domain.ErrNotFound if no stop with that
	// ID exists under that trip.
	Update(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// Delete removes a stop by ID, scoped to the given tripID.
	// Returns domain.ErrNotFound if no stop with that ID exists under that trip.
	Delete(ctx context.Context, tripID, stopID uuid.UUID) error
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db db
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
func NewStopRepo(db db) StopRepo {
	return &pgStopRepo{db: db}
}

const stopColumns = `id, trip_id, country, city_town, duration, currency,
	cost_accommodation, cost_food, cost_other, position, created_at, updated_at`

func (r *pgStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		INSERT INTO stops (trip_id, country, city_town, duration, currency,
		                   cost_accommodation, cost_food, cost_other, position)
		VALUES (@trip_id, @country, @city_town, @duration, @currency,
		        @cost_accommodation, @cost_food, @cost_other,
		        (SELECT COALESCE(MAX(position), 0) + 1 FROM stops WHERE trip_id = @trip_id))
		RETURNING ` + stopColumns

	result, err := scanStop(r.db.QueryRow(ctx, q, stopArgs(stop)))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
	const q = `SELECT ` + stopColumns + ` FROM stops WHERE id = @id AND trip_id = @trip_id`

	result, err := scanStop(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": stopID, "trip_id": tripID}))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	const q = `
		SELECT ` + stopColumns + `
		FROM stops
		WHERE trip_id = @trip_id
		ORDER BY position, created_at`

	stops, err := r.query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTripID: %w", err)
	}
	return stops, nil
}

func (r *pgStopRepo) ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Stop, int64, error) {
	const q = `
		SELECT ` + stopColumns + `
		FROM stops
		WHERE trip_id = @trip_id
		ORDER BY position, created_at
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{"trip_id": tripID, "limit": p.Limit, "offset": p.Offset()}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM stops WHERE trip_id = @trip_id`, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.StopRepo.ListByTripIDPaged: count: %w", err)
	}

	stops, err := r.query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.StopRepo.ListByTripIDPaged: %w", err)
	}
	return stops, total, nil
}

func (r *pgStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		UPDATE stops
		SET country            = @country,
		    city_town          = @city_town,
		    duration           = @duration,
		    currency           = @currency,
		    cost_accommodation = @cost_accommodation,
		    cost_food          = @cost_food,
		    cost_other         = @cost_other,
		    updated_at         = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + stopColumns

	args := stopArgs(stop)
	args["id"] = stop.ID

	result, err := scanStop(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	const q = `DELETE FROM stops WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": stopID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.StopRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StopRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgStopRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Stop, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stops := []domain.Stop{}
	for rows.Next() {
		s, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return stops, nil
}

// stopArgs binds the writable stop columns. decimal.Decimal implements
// driver.Valuer, so costs travel to NUMERIC columns as exact text.
func stopArgs(stop domain.Stop) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_id":            stop.TripID,
		"country":            stop.Country,
		"city_town":          stop.CityTown,
		"duration":           stop.Duration,
		"currency":           stop.Currency,
		"cost_accommodation": stop.CostAccommodation,
		"cost_food":          stop.CostFood,
		"cost_other":         stop.CostOther,
	}
}

// scanStop maps a single database row into a domain.Stop.
// NUMERIC columns scan straight into decimal.Decimal through its sql.Scanner.
func scanStop(s scanner) (domain.Stop, error) {
	var (
		st         domain.Stop
		id, tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &st.Country, &st.CityTown, &st.Duration, &st.Currency,
		&st.CostAccommodation, &st.CostFood, &st.CostOther, &st.Position, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Stop{}, domain.ErrNotFound
		}
		return domain.Stop{}, err
	}

	st.ID = uuid.UUID(id.Bytes)
	st.TripID = uuid.UUID(tripID.Bytes)
	return st, nil
}
