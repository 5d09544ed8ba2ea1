package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sofcar/internal/bookings/service"
	apperrors "sofcar/pkg/errors"
	"sofcar/pkg/logger"
	"sofcar/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type stubBookingService struct {
	created   *model.Booking
	createErr error
}

func (s *stubBookingService) Create(_ context.Context, booking *model.Booking) error {
	s.created = booking
	return s.createErr
}

func (s *stubBookingService) CheckAvailability(context.Context, string, time.Time, time.Time) (*service.Availability, error) {
	return &service.Availability{Available: true}, nil
}

func (s *stubBookingService) GetByID(context.Context, string) (*model.Booking, error) {
	return nil, apperrors.NotFound("Booking")
}

func (s *stubBookingService) GetByReference(context.Context, string) (*model.Booking, error) {
	return nil, apperrors.NotFound("Booking")
}

func (s *stubBookingService) List(context.Context, *model.BookingFilter, int, int64) ([]*model.Booking, int64, error) {
	return nil, 0, nil
}

func (s *stubBookingService) Update(context.Context, string, *model.BookingUpdate) (*model.Booking, error) {
	return nil, apperrors.NotFound("Booking")
}

func (s *stubBookingService) SoftDelete(context.Context, string) error { return nil }

func (s *stubBookingService) Statistics(context.Context) (*model.BookingStatistics, error) {
	return &model.BookingStatistics{}, nil
}

func newTestRouter(stub *stubBookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(stub, logger.New(logger.Config{Output: io.Discard})).RegisterRoutes(router)
	return router
}

func createBookingBody(startDate, endDate string) string {
	return `{
		"car_id": "65a000000000000000000001",
		"start_date": "` + startDate + `",
		"end_date": "` + endDate + `",
		"client_first_name": "Ivan",
		"client_last_name": "Petrov",
		"client_email": "ivan@example.com",
		"client_phone": "+359888123456"
	}`
}

func TestCreate_AcceptsPlainDates(t *testing.T) {
	stub := &stubBookingService{}
	router := newTestRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/bookings",
		strings.NewReader(createBookingBody("2026-09-15", "2026-09-20")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	if stub.created == nil {
		t.Fatal("service was never called")
	}

	wantStart := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	if !stub.created.StartDate.Equal(wantStart) {
		t.Errorf("expected start date %v, got %v", wantStart, stub.created.StartDate)
	}
	wantEnd := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	if !stub.created.EndDate.Equal(wantEnd) {
		t.Errorf("expected end date %v, got %v", wantEnd, stub.created.EndDate)
	}
	if stub.created.IPAddress == "" {
		t.Error("expected client IP to be attached")
	}
}

func TestCreate_AcceptsTimestamps(t *testing.T) {
	stub := &stubBookingService{}
	router := newTestRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/bookings",
		strings.NewReader(createBookingBody("2026-09-15T10:30:00Z", "2026-09-20T18:00:00Z")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	wantStart := time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)
	if !stub.created.StartDate.Equal(wantStart) {
		t.Errorf("expected start date %v, got %v", wantStart, stub.created.StartDate)
	}
}

func TestCreate_RejectsMalformedDates(t *testing.T) {
	stub := &stubBookingService{}
	router := newTestRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/bookings",
		strings.NewReader(createBookingBody("15/09/2026", "20/09/2026")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if stub.created != nil {
		t.Error("service must not be called for malformed dates")
	}
}

func TestCreate_ConflictCarriesErrorCode(t *testing.T) {
	stub := &stubBookingService{
		createErr: apperrors.Conflict("Car is already booked for 2026-09-15 - 2026-09-20"),
	}
	router := newTestRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/bookings",
		strings.NewReader(createBookingBody("2026-09-15", "2026-09-20")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}

	var resp struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %q", apperrors.CodeConflict, resp.Code)
	}
	if resp.Error == "" {
		t.Error("expected a human-readable error message")
	}
}
