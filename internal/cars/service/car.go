package service

import (
	"context"
	"errors"
	"sync"
	"time"

	carserrors "sofcar/internal/cars/errors"
	"sofcar/internal/cars/repository"
	"sofcar/internal/cars/validator"
	"sofcar/pkg/config"
	apperrors "sofcar/pkg/errors"
	"sofcar/pkg/model"
	"sofcar/pkg/sanitizer"
)

// BookingGuard is the slice of the bookings store the fleet service needs:
// which cars are tied up by pending or confirmed bookings.
type BookingGuard interface {
	CountHoldingByCar(ctx context.Context, carID string) (int64, error)
	FindBookedCarIDs(ctx context.Context, start, end time.Time) ([]string, error)
}

type CarService interface {
	Create(ctx context.Context, car *model.Car) error
	GetByID(ctx context.Context, id string) (*model.Car, error)
	ListAvailable(ctx context.Context, start, end *time.Time, class string, limit int, offset int64) ([]*model.Car, error)
	ListAll(ctx context.Context, limit int, offset int64) ([]*model.Car, int64, error)
	Update(ctx context.Context, id string, updates *model.CarUpdate) (*model.Car, error)
	Delete(ctx context.Context, id string) error
	Statistics(ctx context.Context) (*model.CarStatistics, error)
}

type carService struct {
	repo      repository.CarRepository
	bookings  BookingGuard
	validator *validator.CarValidator
	cfg       *config.Config
}

func NewCarService(
	repo repository.CarRepository,
	bookings BookingGuard,
	validator *validator.CarValidator,
	cfg *config.Config,
) CarService {
	return &carService{
		repo:      repo,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *carService) Create(ctx context.Context, car *model.Car) error {
	s.applyDefaults(car)
	s.sanitize(car)

	if err := s.validator.Validate(car); err != nil {
		s.cfg.Log.Warn("Car validation failed", "error", err)
		return apperrors.Validation("Car validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, car); err != nil {
		s.cfg.Log.Error("Failed to create car", "error", err)
		return apperrors.Internal("Failed to create car", err)
	}

	s.cfg.Log.Info("Car created successfully",
		"id", car.ID,
		"brand", car.Brand,
		"model", car.Model,
		"class", car.Class,
	)
	return nil
}

func (s *carService) GetByID(ctx context.Context, id string) (*model.Car, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Car ID cannot be empty")
	}

	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, carserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Car", id)
		}
		if errors.Is(err, carserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid car ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve car", err)
	}

	return car, nil
}

// ListAvailable returns active cars, optionally narrowed to a class and to
// cars free for the requested date range. The range check here is advisory;
// booking creation re-verifies under the reservation lock.
func (s *carService) ListAvailable(ctx context.Context, start, end *time.Time, class string, limit int, offset int64) ([]*model.Car, error) {
	if class != "" && !validClass(class) {
		return nil, apperrors.InvalidInput("Invalid car class: " + class)
	}

	cars, err := s.repo.FindActive(ctx, class, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list active cars", "error", err)
		return nil, apperrors.Internal("Failed to retrieve cars", err)
	}

	if start == nil || end == nil {
		return cars, nil
	}

	bookedIDs, err := s.bookings.FindBookedCarIDs(ctx, *start, *end)
	if err != nil {
		s.cfg.Log.Error("Failed to resolve booked cars", "error", err)
		return nil, apperrors.Internal("Failed to check car availability", err)
	}

	booked := make(map[string]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	available := make([]*model.Car, 0, len(cars))
	for _, car := range cars {
		if _, taken := booked[car.ID]; !taken {
			available = append(available, car)
		}
	}

	return available, nil
}

func (s *carService) ListAll(ctx context.Context, limit int, offset int64) ([]*model.Car, int64, error) {
	var count int64
	var cars []*model.Car
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count cars", "error", errCount)
			errCount = apperrors.Internal("Failed to count cars", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		cars, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list cars", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve cars", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return cars, count, nil
}

func (s *carService) Update(ctx context.Context, id string, updates *model.CarUpdate) (*model.Car, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Car ID cannot be empty")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Car update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := s.mergeCarUpdates(existing, updates)
	s.sanitize(merged)

	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Car validation failed after merge", "id", id, "error", err)
		return nil, apperrors.Validation("Car validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, carserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Car", id)
		}
		s.cfg.Log.Error("Failed to update car", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update car", err)
	}

	s.cfg.Log.Info("Car updated successfully", "id", id)
	return merged, nil
}

// Delete removes a car from the fleet. Cars with pending or confirmed
// bookings cannot be deleted; cancel or complete those bookings first.
func (s *carService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Car ID cannot be empty")
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	holding, err := s.bookings.CountHoldingByCar(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to count holding bookings for car", "id", id, "error", err)
		return apperrors.Internal("Failed to check car bookings", err)
	}
	if holding > 0 {
		return apperrors.Conflict("Car has pending or confirmed bookings and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, carserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Car", id)
		}
		s.cfg.Log.Error("Failed to delete car", "id", id, "error", err)
		return apperrors.Internal("Failed to delete car", err)
	}

	s.cfg.Log.Info("Car deleted successfully", "id", id)
	return nil
}

func (s *carService) Statistics(ctx context.Context) (*model.CarStatistics, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to count cars", err)
	}

	active, err := s.repo.CountActive(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to count active cars", err)
	}

	return &model.CarStatistics{
		Total:    int(total),
		Active:   int(active),
		Inactive: int(total - active),
	}, nil
}

// --- Helpers ---

func (s *carService) applyDefaults(car *model.Car) {
	if car.DepositAmount == 0 {
		car.DepositAmount = s.cfg.DefaultDepositAmount
	}
}

func (s *carService) sanitize(car *model.Car) {
	car.Brand = sanitizer.TrimAndNormalize(car.Brand)
	car.Model = sanitizer.TrimAndNormalize(car.Model)
	car.Features = sanitizer.NormalizeSlice(car.Features, sanitizer.TrimAndNormalize)
}

func (s *carService) mergeCarUpdates(existing *model.Car, updates *model.CarUpdate) *model.Car {
	merged := *existing

	if updates.Brand != "" {
		merged.Brand = updates.Brand
	}
	if updates.Model != "" {
		merged.Model = updates.Model
	}
	if updates.Year != nil {
		merged.Year = *updates.Year
	}
	if updates.Class != "" {
		merged.Class = updates.Class
	}
	if updates.PricePerDay != nil {
		merged.PricePerDay = *updates.PricePerDay
	}
	if updates.DepositAmount != nil {
		merged.DepositAmount = *updates.DepositAmount
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}
	if updates.FuelType != "" {
		merged.FuelType = updates.FuelType
	}
	if updates.Transmission != "" {
		merged.Transmission = updates.Transmission
	}
	if updates.Seats != nil {
		merged.Seats = *updates.Seats
	}
	if updates.Features != nil {
		merged.Features = *updates.Features
	}
	if updates.ImageURLs != nil {
		merged.ImageURLs = *updates.ImageURLs
	}

	return &merged
}

func validClass(class string) bool {
	for _, c := range model.ValidCarClasses {
		if c == class {
			return true
		}
	}
	return false
}
