package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	carserrors "sofcar/internal/cars/errors"
	"sofcar/internal/cars/validator"
	"sofcar/pkg/config"
	apperrors "sofcar/pkg/errors"
	"sofcar/pkg/logger"
	"sofcar/pkg/model"
)

// --- Mocks ---

type mockCarRepo struct {
	mu     sync.Mutex
	cars   map[string]*model.Car
	nextID int
}

func newMockCarRepo(cars ...*model.Car) *mockCarRepo {
	repo := &mockCarRepo{cars: map[string]*model.Car{}}
	for _, c := range cars {
		repo.cars[c.ID] = c
	}
	return repo
}

func (m *mockCarRepo) Create(_ context.Context, car *model.Car) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	car.ID = objectID(m.nextID)
	stored := *car
	m.cars[car.ID] = &stored
	return nil
}

func (m *mockCarRepo) FindByID(_ context.Context, id string) (*model.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	car, ok := m.cars[id]
	if !ok {
		return nil, carserrors.ErrNotFound
	}
	copied := *car
	return &copied, nil
}

func (m *mockCarRepo) FindAll(_ context.Context, _ int, _ int64) ([]*model.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*model.Car
	for _, car := range m.cars {
		copied := *car
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockCarRepo) FindActive(_ context.Context, class string, _ int, _ int64) ([]*model.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*model.Car
	for _, car := range m.cars {
		if !car.IsActive {
			continue
		}
		if class != "" && car.Class != class {
			continue
		}
		copied := *car
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockCarRepo) Update(_ context.Context, id string, car *model.Car) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cars[id]; !ok {
		return carserrors.ErrNotFound
	}
	stored := *car
	stored.ID = id
	m.cars[id] = &stored
	return nil
}

func (m *mockCarRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cars[id]; !ok {
		return carserrors.ErrNotFound
	}
	delete(m.cars, id)
	return nil
}

func (m *mockCarRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.cars)), nil
}

func (m *mockCarRepo) CountActive(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, car := range m.cars {
		if car.IsActive {
			count++
		}
	}
	return count, nil
}

type mockGuard struct {
	holding   map[string]int64
	bookedIDs []string
}

func (m *mockGuard) CountHoldingByCar(_ context.Context, carID string) (int64, error) {
	return m.holding[carID], nil
}

func (m *mockGuard) FindBookedCarIDs(_ context.Context, _, _ time.Time) ([]string, error) {
	return m.bookedIDs, nil
}

// --- Fixtures ---

func objectID(n int) string {
	const hexDigits = "0123456789abcdef"
	id := []byte("65b000000000000000000000")
	id[len(id)-1] = hexDigits[n%16]
	id[len(id)-2] = hexDigits[(n/16)%16]
	return string(id)
}

func activeCar(n int, class string, pricePerDay float64) *model.Car {
	return &model.Car{
		ID:          objectID(n),
		Brand:       "Toyota",
		Model:       "Corolla",
		Year:        2022,
		Class:       class,
		PricePerDay: pricePerDay,
		IsActive:    true,
	}
}

func newCarService(repo *mockCarRepo, guard *mockGuard) CarService {
	cfg := &config.Config{
		DefaultDepositAmount: 500,
		Log:                  logger.New(logger.Config{Output: io.Discard}),
	}
	if guard == nil {
		guard = &mockGuard{}
	}
	return NewCarService(repo, guard, validator.NewCarValidator(cfg.Log), cfg)
}

// --- Tests ---

func TestCreate_AppliesDefaultDeposit(t *testing.T) {
	repo := newMockCarRepo()
	svc := newCarService(repo, nil)

	car := &model.Car{
		Brand:       "  Skoda ",
		Model:       "Octavia",
		Year:        2023,
		Class:       model.ClassStandard,
		PricePerDay: 70,
		IsActive:    true,
	}
	if err := svc.Create(context.Background(), car); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if car.DepositAmount != 500 {
		t.Errorf("expected default deposit 500, got %v", car.DepositAmount)
	}
	if car.Brand != "Skoda" {
		t.Errorf("expected sanitized brand, got %q", car.Brand)
	}
	if car.ID == "" {
		t.Error("expected repository to assign an ID")
	}
}

func TestCreate_ExplicitDepositKept(t *testing.T) {
	repo := newMockCarRepo()
	svc := newCarService(repo, nil)

	car := activeCar(1, model.ClassPremium, 120)
	car.ID = ""
	car.DepositAmount = 1000

	if err := svc.Create(context.Background(), car); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if car.DepositAmount != 1000 {
		t.Errorf("explicit deposit overwritten: %v", car.DepositAmount)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc := newCarService(newMockCarRepo(), nil)

	err := svc.Create(context.Background(), &model.Car{Brand: "Toyota"})
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected code %s, got %v", apperrors.CodeValidation, err)
	}
}

func TestListAvailable(t *testing.T) {
	economy := activeCar(1, model.ClassEconomy, 50)
	standard := activeCar(2, model.ClassStandard, 70)
	inactive := activeCar(3, model.ClassEconomy, 40)
	inactive.IsActive = false

	repo := newMockCarRepo(economy, standard, inactive)

	t.Run("inactive cars hidden", func(t *testing.T) {
		svc := newCarService(repo, nil)
		cars, err := svc.ListAvailable(context.Background(), nil, nil, "", 50, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cars) != 2 {
			t.Errorf("expected 2 active cars, got %d", len(cars))
		}
	})

	t.Run("class filter applied", func(t *testing.T) {
		svc := newCarService(repo, nil)
		cars, err := svc.ListAvailable(context.Background(), nil, nil, model.ClassEconomy, 50, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cars) != 1 || cars[0].ID != economy.ID {
			t.Errorf("expected only the economy car, got %d cars", len(cars))
		}
	})

	t.Run("invalid class rejected", func(t *testing.T) {
		svc := newCarService(repo, nil)
		_, err := svc.ListAvailable(context.Background(), nil, nil, "luxury", 50, 0)
		if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
			t.Errorf("expected code %s, got %v", apperrors.CodeInvalidInput, err)
		}
	})

	t.Run("booked cars excluded for date range", func(t *testing.T) {
		svc := newCarService(repo, &mockGuard{bookedIDs: []string{economy.ID}})
		start := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

		cars, err := svc.ListAvailable(context.Background(), &start, &end, "", 50, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cars) != 1 || cars[0].ID != standard.ID {
			t.Errorf("expected only the unbooked standard car, got %d cars", len(cars))
		}
	})
}

func TestUpdate_MergesFields(t *testing.T) {
	car := activeCar(1, model.ClassEconomy, 50)
	repo := newMockCarRepo(car)
	svc := newCarService(repo, nil)

	newPrice := 65.0
	inactive := false
	updated, err := svc.Update(context.Background(), car.ID, &model.CarUpdate{
		PricePerDay: &newPrice,
		IsActive:    &inactive,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.PricePerDay != 65 {
		t.Errorf("expected price 65, got %v", updated.PricePerDay)
	}
	if updated.IsActive {
		t.Error("expected car to be deactivated")
	}
	if updated.Brand != car.Brand {
		t.Errorf("untouched field changed: %q", updated.Brand)
	}
}

func TestUpdate_UnknownCar(t *testing.T) {
	svc := newCarService(newMockCarRepo(), nil)

	price := 65.0
	_, err := svc.Update(context.Background(), objectID(9), &model.CarUpdate{PricePerDay: &price})
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected code %s, got %v", apperrors.CodeNotFound, err)
	}
}

func TestDelete_BlockedByHoldingBookings(t *testing.T) {
	car := activeCar(1, model.ClassEconomy, 50)
	repo := newMockCarRepo(car)
	svc := newCarService(repo, &mockGuard{holding: map[string]int64{car.ID: 2}})

	err := svc.Delete(context.Background(), car.ID)
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Errorf("expected code %s, got %v", apperrors.CodeConflict, err)
	}

	if _, err := repo.FindByID(context.Background(), car.ID); err != nil {
		t.Error("car must not be deleted while bookings hold it")
	}
}

func TestDelete_Succeeds(t *testing.T) {
	car := activeCar(1, model.ClassEconomy, 50)
	repo := newMockCarRepo(car)
	svc := newCarService(repo, &mockGuard{})

	if err := svc.Delete(context.Background(), car.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, err := svc.GetByID(context.Background(), car.ID)
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected code %s after delete, got %v", apperrors.CodeNotFound, err)
	}
}

func TestStatistics(t *testing.T) {
	active := activeCar(1, model.ClassEconomy, 50)
	inactive := activeCar(2, model.ClassStandard, 70)
	inactive.IsActive = false

	svc := newCarService(newMockCarRepo(active, inactive), nil)

	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("statistics failed: %v", err)
	}
	if stats.Total != 2 || stats.Active != 1 || stats.Inactive != 1 {
		t.Errorf("unexpected statistics: %+v", stats)
	}
}
