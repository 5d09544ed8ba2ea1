package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	bookingserrors "sofcar/internal/bookings/errors"
	"sofcar/internal/bookings/repository"
	"sofcar/internal/bookings/validator"
	"sofcar/pkg/config"
	apperrors "sofcar/pkg/errors"
	"sofcar/pkg/lock"
	"sofcar/pkg/model"
	"sofcar/pkg/notify"
	"sofcar/pkg/ratelimit"
	"sofcar/pkg/sanitizer"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// CarCatalog is the slice of the fleet service the reservation engine
// needs. GetByID returns an AppError NotFound for unknown IDs.
type CarCatalog interface {
	GetByID(ctx context.Context, id string) (*model.Car, error)
}

// Availability is the response of a lock-free availability probe. It is a
// point-in-time answer, not a reservation.
type Availability struct {
	Available     bool    `json:"available"`
	Reason        string  `json:"reason,omitempty"`
	RentalDays    int     `json:"rental_days,omitempty"`
	TotalPrice    float64 `json:"total_price,omitempty"`
	DepositAmount float64 `json:"deposit_amount,omitempty"`
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	CheckAvailability(ctx context.Context, carID string, start, end time.Time) (*Availability, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetByReference(ctx context.Context, reference string) (*model.Booking, error)
	List(ctx context.Context, filter *model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error)
	SoftDelete(ctx context.Context, id string) error
	Statistics(ctx context.Context) (*model.BookingStatistics, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	cars      CarCatalog
	locker    lock.CarLocker
	limiter   ratelimit.Limiter
	notifier  notify.Notifier
	validator *validator.BookingValidator
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	cars CarCatalog,
	locker lock.CarLocker,
	limiter ratelimit.Limiter,
	notifier notify.Notifier,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		cars:      cars,
		locker:    locker,
		limiter:   limiter,
		notifier:  notifier,
		validator: validator,
		cfg:       cfg,
	}
}

// Create runs the reservation pipeline: rate limit, validate, lock the car,
// re-check availability under the lock, insert, then notify asynchronously.
// Either exactly one booking row is written or none.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	if err := s.limiter.Admit(booking.IPAddress); err != nil {
		s.cfg.Log.Warn("Booking attempt rate limited", "ip", booking.IPAddress)
		return err
	}

	s.applyDefaults(booking)
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	if err := s.locker.Acquire(ctx, booking.CarID); err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.locker.Release(ctx, booking.CarID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release car lock", "car_id", booking.CarID, "error", releaseErr)
		}
	}()

	car, err := s.activeCar(ctx, booking.CarID)
	if err != nil {
		return err
	}

	booking.RentalDays = RentalDays(booking.StartDate, booking.EndDate)
	booking.TotalPrice = TotalPrice(car.PricePerDay, booking.RentalDays)
	booking.DepositAmount = car.DepositAmount
	booking.Reference = newReference()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "car_id", booking.CarID, "error", err)
		return err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"reference", booking.Reference,
		"car_id", booking.CarID,
		"start_date", booking.StartDate,
		"end_date", booking.EndDate,
		"total_price", booking.TotalPrice,
	)

	s.notifyAsync(notify.EventBookingCreated, booking)
	return nil
}

// CheckAvailability answers whether a car is free for the range, with the
// quote the customer would pay. It takes no lock and guarantees nothing.
func (s *bookingService) CheckAvailability(ctx context.Context, carID string, start, end time.Time) (*Availability, error) {
	start, end = DateOnly(start), DateOnly(end)

	car, err := s.activeCar(ctx, carID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateDates(start, end); err != nil {
		return &Availability{
			Available: false,
			Reason:    err.Error(),
		}, nil
	}

	overlapping, err := s.repo.FindOverlapping(ctx, carID, start, end)
	if err != nil {
		return nil, apperrors.Internal("Failed to check existing bookings", err)
	}
	if len(overlapping) > 0 {
		return &Availability{
			Available: false,
			Reason:    "car is already booked for the selected dates",
		}, nil
	}

	days := RentalDays(start, end)
	return &Availability{
		Available:     true,
		RentalDays:    days,
		TotalPrice:    TotalPrice(car.PricePerDay, days),
		DepositAmount: car.DepositAmount,
	}, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}

	return booking, nil
}

func (s *bookingService) GetByReference(ctx context.Context, reference string) (*model.Booking, error) {
	if reference == "" {
		return nil, apperrors.InvalidInput("Booking reference cannot be empty")
	}

	booking, err := s.repo.FindByReference(ctx, strings.ToUpper(strings.TrimSpace(reference)))
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", reference)
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) List(ctx context.Context, filter *model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// Update applies the admin mutation contract: only status, deposit status
// and notes may change. The deleted status is reserved for the soft-delete
// endpoint.
func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	if updates.Status == model.StatusDeleted {
		return nil, apperrors.InvalidInput("Bookings can only be deleted through the delete endpoint")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}

	merged := *existing
	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.DepositStatus != "" {
		merged.DepositStatus = updates.DepositStatus
	}
	if updates.Notes != nil {
		merged.Notes = sanitizer.NormalizeMessage(*updates.Notes)
	}

	if err := s.repo.Update(ctx, id, &merged); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking", err)
	}

	s.cfg.Log.Info("Booking updated successfully",
		"id", id,
		"status", merged.Status,
		"deposit_status", merged.DepositStatus,
	)

	s.notifyAsync(notify.EventBookingUpdated, &merged)
	return &merged, nil
}

// SoftDelete marks a booking deleted. The row stays for audit history; a
// second delete of the same booking is rejected.
func (s *bookingService) SoftDelete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapLookupError(err, id)
	}

	if existing.Status == model.StatusDeleted {
		return apperrors.InvalidInput("Booking is already deleted")
	}

	deleted := *existing
	deleted.Status = model.StatusDeleted

	if err := s.repo.Update(ctx, id, &deleted); err != nil {
		s.cfg.Log.Error("Failed to soft-delete booking", "id", id, "error", err)
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking soft-deleted", "id", id, "reference", existing.Reference)
	return nil
}

func (s *bookingService) Statistics(ctx context.Context) (*model.BookingStatistics, error) {
	stats, err := s.repo.Statistics(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to compute booking statistics", "error", err)
		return nil, apperrors.Internal("Failed to compute booking statistics", err)
	}
	return stats, nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	// IDs are store-assigned; a client-supplied one must never reach the
	// overlap check. Dates are calendar days, time of day is discarded.
	b.ID = ""
	b.StartDate = DateOnly(b.StartDate)
	b.EndDate = DateOnly(b.EndDate)
	b.Status = model.StatusPending
	b.DepositStatus = model.DepositPending
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.ClientFirstName = sanitizer.NormalizeName(b.ClientFirstName)
	b.ClientLastName = sanitizer.NormalizeName(b.ClientLastName)
	b.ClientEmail = sanitizer.NormalizeEmail(b.ClientEmail)
	if phone := sanitizer.NormalizePhone(b.ClientPhone); phone != "" {
		b.ClientPhone = phone
	}
	b.Notes = sanitizer.NormalizeMessage(b.Notes)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// activeCar fetches the car and hides inactive ones: a car pulled from the
// fleet is indistinguishable from one that never existed.
func (s *bookingService) activeCar(ctx context.Context, carID string) (*model.Car, error) {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if !car.IsActive {
		return nil, apperrors.NotFoundWithID("Car", carID)
	}
	return car, nil
}

func (s *bookingService) verifyNoOverlap(ctx context.Context, booking *model.Booking) error {
	existing, err := s.repo.FindOverlapping(ctx, booking.CarID, booking.StartDate, booking.EndDate)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	if len(existing) > 0 {
		b := existing[0]
		return apperrors.Conflict(fmt.Sprintf(
			"Car is already booked for %s - %s",
			b.StartDate.Format("2006-01-02"),
			b.EndDate.Format("2006-01-02"),
		))
	}
	return nil
}

// notifyAsync dispatches the notification in the background. Delivery
// failures are logged and never affect the booking outcome.
func (s *bookingService) notifyAsync(eventType string, booking *model.Booking) {
	snapshot := *booking

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var err error
		switch eventType {
		case notify.EventBookingUpdated:
			err = s.notifier.BookingUpdated(ctx, &snapshot)
		default:
			err = s.notifier.BookingCreated(ctx, &snapshot)
		}
		if err != nil {
			s.cfg.Log.Error("Failed to dispatch booking notification",
				"event", eventType,
				"reference", snapshot.Reference,
				"error", err,
			)
		}
	}()
}

// newReference produces a customer-facing booking code like SOF3F2A91BC.
func newReference() string {
	id := uuid.New()
	return "SOF" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func (s *bookingService) mapLookupError(err error, id string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return apperrors.Internal("Failed to retrieve booking", err)
}
