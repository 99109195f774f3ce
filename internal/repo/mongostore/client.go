// Package mongostore implements repo.TripRepo and repo.StopRepo on MongoDB.
// Trips and stops live in separate collections keyed by UUID strings; costs
// are stored as Decimal128 so no precision is lost on the round trip.
package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	tripsCollection = "trips"
	stopsCollection = "stops"
)

// Connect opens a client for uri and verifies the server is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore.Connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongostore.Connect: ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the repos' queries rely on. It is safe to
// call on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(tripsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "public", Value: 1}, {Key: "start_date", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("mongostore.EnsureIndexes: trips: %w", err)
	}
	if _, err := db.Collection(stopsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "trip_id", Value: 1}, {Key: "position", Value: 1}},
	}); err != nil {
		return fmt.Errorf("mongostore.EnsureIndexes: stops: %w", err)
	}
	return nil
}
