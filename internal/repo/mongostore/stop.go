package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pkordes/travelpal/internal/domain"
	"github.com/pkordes/travelpal/internal/repo"
)

type stopDoc struct {
	ID        string    `bson:"_id"`
	TripID    string    `bson:"trip_id"`
	Country   string    `bson:"country"`
	CityTown  string    `bson:"city_town"`
	Duration  int       `bson:"duration"`
	Currency  string    `bson:"currency"`
	Costs     stopCosts `bson:",inline"`
	Position  int       `bson:"position"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// stopCosts is the Decimal128 form of a stop's per-night rates.
type stopCosts struct {
	Accommodation primitive.Decimal128 `bson:"cost_accommodation"`
	Food          primitive.Decimal128 `bson:"cost_food"`
	Other         primitive.Decimal128 `bson:"cost_other"`
}

// stopUpdate is the $set document for an edited stop.
type stopUpdate struct {
	Country   string    `bson:"country"`
	CityTown  string    `bson:"city_town"`
	Duration  int       `bson:"duration"`
	Currency  string    `bson:"currency"`
	Costs     stopCosts `bson:",inline"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d stopDoc) toDomain() (domain.Stop, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("stop id: %w", err)
	}
	tripID, err := uuid.Parse(d.TripID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("trip id: %w", err)
	}
	s := domain.Stop{
		ID:        id,
		TripID:    tripID,
		Country:   d.Country,
		CityTown:  d.CityTown,
		Duration:  d.Duration,
		Currency:  d.Currency,
		Position:  d.Position,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
	if s.CostAccommodation, err = fromDecimal128(d.Costs.Accommodation); err != nil {
		return domain.Stop{}, fmt.Errorf("cost_accommodation: %w", err)
	}
	if s.CostFood, err = fromDecimal128(d.Costs.Food); err != nil {
		return domain.Stop{}, fmt.Errorf("cost_food: %w", err)
	}
	if s.CostOther, err = fromDecimal128(d.Costs.Other); err != nil {
		return domain.Stop{}, fmt.Errorf("cost_other: %w", err)
	}
	return s, nil
}

// encodeCosts converts the three per-night rates of s to Decimal128.
func encodeCosts(s domain.Stop) (stopCosts, error) {
	var (
		c   stopCosts
		err error
	)
	if c.Accommodation, err = toDecimal128(s.CostAccommodation); err != nil {
		return stopCosts{}, fmt.Errorf("cost_accommodation: %w", err)
	}
	if c.Food, err = toDecimal128(s.CostFood); err != nil {
		return stopCosts{}, fmt.Errorf("cost_food: %w", err)
	}
	if c.Other, err = toDecimal128(s.CostOther); err != nil {
		return stopCosts{}, fmt.Errorf("cost_other: %w", err)
	}
	return c, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}

type stopRepo struct {
	stops *mongo.Collection
}

// NewStopRepo constructs a repo.StopRepo backed by db.
func NewStopRepo(db *mongo.Database) repo.StopRepo {
	return &stopRepo{stops: db.Collection(stopsCollection)}
}

var visitationOrder = bson.D{{Key: "position", Value: 1}, {Key: "created_at", Value: 1}}

func (r *stopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	position, err := r.nextPosition(ctx, stop.TripID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("mongostore.StopRepo.Create: %w", err)
	}

	costs, err := encodeCosts(stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("mongostore.StopRepo.Create: %w", err)
	}

	ts := now()
	doc := stopDoc{
		ID:        uuid.NewString(),
		TripID:    stop.TripID.String(),
		Country:   stop.Country,
		CityTown:  stop.CityTown,
		Duration:  stop.Duration,
		Currency:  stop.Currency,
		Costs:     costs,
		Position:  position,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if _, err := r.stops.InsertOne(ctx, doc); err != nil {
		return domain.Stop{}, fmt.Errorf("mongostore.StopRepo.Create: %w", err)
	}
	result, err := doc.toDomain()
	if err != nil {
		return domain.Stop{}, fmt.Errorf("mongostore.StopRepo.Create: %w", err)
	}
	return result, nil
}

// nextPosition returns one past the highest position used on the trip.
func (r *stopRepo) nextPosition(ctx context.Context, tripID uuid.UUID) (int, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "position", Value: -1}}).
		SetProjection(bson.M{"position": 1})

	var last struct {
		Position int `bson:"position"`
	}
	err := r.stops.FindOne(ctx, bson.M{"trip_id": tripID.String()}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("next position: %w", err)
	}
	return last.Position + 1, nil
}

func (r *stopRepo) GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
	filter := bson.M{"_id": stopID.String(), "trip_id": tripID.String()}
	result, err := decodeStop(r.stops.FindOne(ctx, filter))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("mongostore.StopRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *stopRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	stops, err := r.find(ctx, tripID, options.Find().SetSort(visitationOrder))
	if err != nil {
		return nil, fmt.Errorf("mongostore.StopRepo.ListByTripID: %w", err)
	}
	return stops, nil
}

func (r *stopRepo) ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Stop, int64, error) {
	total, err := r.stops.CountDocuments(ctx, bson.M{"trip_id": tripID.String()})
	if err != nil {
		return nil, 0, fmt.Errorf("mongostore.StopRepo.ListByTripIDPaged: count: %w", err)
	}

	opts := options.Find().
		SetSort(visitationOrder).
		SetSkip(int64(p.Offset())).
		SetLimit(int64(p.Limit))

	stops, err := r.find(ctx, tripID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("mongostore.StopRepo.ListByTripIDPaged: %w", err)
	}
	return stops, total, nil
}

func (r *stopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	costs, err := encodeCosts(stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("mongostore.StopRepo.Update: %w", err)
	}
	set := stopUpdate{
		Country:   stop.Country,
		CityTown:  stop.CityTown,
		Duration:  stop.Duration,
		Currency:  stop.Currency,
		Costs:     costs,
		UpdatedAt: now(),
	}

	filter := bson.M{"_id": stop.ID.String(), "trip_id": stop.TripID.String()}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	result, err := decodeStop(r.stops.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("mongostore.StopRepo.Update: %w", err)
	}
	return result, nil
}

func (r *stopRepo) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	res, err := r.stops.DeleteOne(ctx, bson.M{"_id": stopID.String(), "trip_id": tripID.String()})
	if err != nil {
		return fmt.Errorf("mongostore.StopRepo.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("mongostore.StopRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *stopRepo) find(ctx context.Context, tripID uuid.UUID, opts *options.FindOptions) ([]domain.Stop, error) {
	cursor, err := r.stops.Find(ctx, bson.M{"trip_id": tripID.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stops := []domain.Stop{}
	for cursor.Next(ctx) {
		var doc stopDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		s, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return stops, nil
}

func decodeStop(res *mongo.SingleResult) (domain.Stop, error) {
	var doc stopDoc
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Stop{}, domain.ErrNotFound
		}
		return domain.Stop{}, err
	}
	return doc.toDomain()
}
