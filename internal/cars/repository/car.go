package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	carserrors "sofcar/internal/cars/errors"
	"sofcar/pkg/config"
	"sofcar/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Cars"
)

type CarRepository interface {
	Create(ctx context.Context, car *model.Car) error
	FindByID(ctx context.Context, id string) (*model.Car, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Car, error)
	FindActive(ctx context.Context, class string, limit int, offset int64) ([]*model.Car, error)
	Update(ctx context.Context, id string, car *model.Car) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type mongoCarRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoCarRepository(cfg *config.Config) CarRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCarRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// SessionContext cannot be wrapped without breaking transaction semantics.
func (r *mongoCarRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCarRepository) Create(ctx context.Context, car *model.Car) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	car.CreatedAt = now
	car.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, car)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		car.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCarRepository) FindByID(ctx context.Context, id string) (*model.Car, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", carserrors.ErrInvalidID, id)
	}

	var car model.Car
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&car)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, carserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find car: %w", err)
	}

	return &car, nil
}

func (r *mongoCarRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Car, error) {
	return r.find(ctx, bson.M{}, limit, offset)
}

func (r *mongoCarRepository) FindActive(ctx context.Context, class string, limit int, offset int64) ([]*model.Car, error) {
	filter := bson.M{"is_active": true}
	if class != "" {
		filter["class"] = class
	}
	return r.find(ctx, filter, limit, offset)
}

func (r *mongoCarRepository) find(ctx context.Context, filter bson.M, limit int, offset int64) ([]*model.Car, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "price_per_day", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find cars: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*model.Car
	if err = cursor.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("failed to decode cars: %w", err)
	}

	return cars, nil
}

func (r *mongoCarRepository) Update(ctx context.Context, id string, car *model.Car) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", carserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"brand":          car.Brand,
			"model":          car.Model,
			"year":           car.Year,
			"class":          car.Class,
			"price_per_day":  car.PricePerDay,
			"deposit_amount": car.DepositAmount,
			"is_active":      car.IsActive,
			"fuel_type":      car.FuelType,
			"transmission":   car.Transmission,
			"seats":          car.Seats,
			"features":       car.Features,
			"image_urls":     car.ImageURLs,
			"updated_at":     time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}

	if result.MatchedCount == 0 {
		return carserrors.ErrNotFound
	}

	return nil
}

func (r *mongoCarRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", carserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}

	if result.DeletedCount == 0 {
		return carserrors.ErrNotFound
	}

	return nil
}

func (r *mongoCarRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count cars: %w", err)
	}

	return count, nil
}

func (r *mongoCarRepository) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count active cars: %w", err)
	}

	return count, nil
}
