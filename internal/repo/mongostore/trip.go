package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pkordes/travelpal/internal/domain"
	"github.com/pkordes/travelpal/internal/repo"
)

type tripDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	OwnerID   string    `bson:"owner_id"`
	Travelers int       `bson:"travelers"`
	StartDate time.Time `bson:"start_date"`
	Public    bool      `bson:"public"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d tripDoc) toDomain() (domain.Trip, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("trip id: %w", err)
	}
	owner, err := uuid.Parse(d.OwnerID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("owner id: %w", err)
	}
	return domain.Trip{
		ID:        id,
		Name:      d.Name,
		OwnerID:   owner,
		Travelers: d.Travelers,
		StartDate: d.StartDate.UTC(),
		Public:    d.Public,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}

type tripRepo struct {
	trips *mongo.Collection
	stops *mongo.Collection
}

// NewTripRepo constructs a repo.TripRepo backed by db.
func NewTripRepo(db *mongo.Database) repo.TripRepo {
	return &tripRepo{
		trips: db.Collection(tripsCollection),
		stops: db.Collection(stopsCollection),
	}
}

func (r *tripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	ts := now()
	doc := tripDoc{
		ID:        uuid.NewString(),
		Name:      trip.Name,
		OwnerID:   trip.OwnerID.String(),
		Travelers: trip.Travelers,
		StartDate: trip.StartDate.UTC(),
		Public:    trip.Public,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if _, err := r.trips.InsertOne(ctx, doc); err != nil {
		return domain.Trip{}, fmt.Errorf("mongostore.TripRepo.Create: %w", err)
	}
	result, err := doc.toDomain()
	if err != nil {
		return domain.Trip{}, fmt.Errorf("mongostore.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *tripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := decodeTrip(r.trips.FindOne(ctx, bson.M{"_id": id.String()}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("mongostore.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *tripRepo) ListPaged(ctx context.Context, f domain.TripFilter, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	filter := bson.M{"owner_id": f.ViewerID.String()}
	if !f.OwnedOnly {
		filter = bson.M{"$or": bson.A{filter, bson.M{"public": true}}}
	}

	total, err := r.trips.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("mongostore.TripRepo.ListPaged: count: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_date", Value: 1}, {Key: "created_at", Value: 1}}).
		SetSkip(int64(p.Offset())).
		SetLimit(int64(p.Limit))

	cursor, err := r.trips.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("mongostore.TripRepo.ListPaged: %w", err)
	}
	defer cursor.Close(ctx)

	trips := []domain.Trip{}
	for cursor.Next(ctx) {
		var doc tripDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("mongostore.TripRepo.ListPaged: decode: %w", err)
		}
		t, err := doc.toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("mongostore.TripRepo.ListPaged: %w", err)
		}
		trips = append(trips, t)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("mongostore.TripRepo.ListPaged: cursor: %w", err)
	}
	return trips, total, nil
}

func (r *tripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	update := bson.M{"$set": bson.M{
		"name":       trip.Name,
		"travelers":  trip.Travelers,
		"start_date": trip.StartDate.UTC(),
		"public":     trip.Public,
		"updated_at": now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	result, err := decodeTrip(r.trips.FindOneAndUpdate(ctx, bson.M{"_id": trip.ID.String()}, update, opts))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("mongostore.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes the trip first so a concurrent reader never sees stops
// without their trip, then removes the stops.
func (r *tripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.trips.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("mongostore.TripRepo.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("mongostore.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	if _, err := r.stops.DeleteMany(ctx, bson.M{"trip_id": id.String()}); err != nil {
		return fmt.Errorf("mongostore.TripRepo.Delete: stops: %w", err)
	}
	return nil
}

func decodeTrip(res *mongo.SingleResult) (domain.Trip, error) {
	var doc tripDoc
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	return doc.toDomain()
}

// now matches the millisecond precision Mongo stores dates with, so a
// created record compares equal to the same record read back.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
