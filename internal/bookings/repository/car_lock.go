package repository

import (
	"context"
	"fmt"
	"time"

	"sofcar/pkg/config"
	apperrors "sofcar/pkg/errors"
	"sofcar/pkg/lock"
	"sofcar/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const lockCollectionName = "Car_locks"

// mongoCarLocker implements lock.CarLocker on a dedicated collection.
// Acquire is a conditional insert with the car ID as _id: a duplicate key
// means another request holds the car. A TTL index on expires_at reaps
// locks abandoned by crashed instances.
type mongoCarLocker struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoCarLocker(cfg *config.Config) lock.CarLocker {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCarLocker{
		cfg:        cfg,
		collection: db.Collection(lockCollectionName),
	}
}

// EnsureLockIndexes creates the TTL index backing lock expiry. Called once
// at startup.
func EnsureLockIndexes(ctx context.Context, cfg *config.Config) error {
	collection := cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(lockCollectionName)

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("failed to create car lock TTL index: %w", err)
	}
	return nil
}

func (l *mongoCarLocker) Acquire(ctx context.Context, carID string) error {
	now := time.Now().UTC()
	carLock := &model.CarLock{
		CarID:     carID,
		ExpiresAt: now.Add(l.cfg.CarLockTTL),
		CreatedAt: now,
	}

	_, err := l.collection.InsertOne(ctx, carLock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("This car is currently being booked by another customer, please try again")
		}
		return apperrors.Internal("Failed to acquire car lock", err)
	}

	return nil
}

func (l *mongoCarLocker) Release(ctx context.Context, carID string) error {
	_, err := l.collection.DeleteOne(ctx, bson.M{"_id": carID})
	return err
}
