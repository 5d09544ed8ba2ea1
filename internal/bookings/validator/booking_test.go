package validator

import (
	"io"
	"strings"
	"testing"
	"time"

	"sofcar/pkg/config"
	"sofcar/pkg/logger"
	"sofcar/pkg/model"
)

func newTestValidator(t *testing.T) *BookingValidator {
	t.Helper()

	cfg := &config.Config{
		MinRentalDays:         5,
		MaxRentalDays:         30,
		MaxAdvanceBookingDays: 90,
	}
	v := NewBookingValidator(cfg, logger.New(logger.Config{Output: io.Discard}))
	v.Now = func() time.Time {
		return time.Date(2025, 5, 1, 14, 30, 0, 0, time.UTC)
	}
	return v
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateDates(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr string
	}{
		{"valid five day rental", day(2025, 6, 1), day(2025, 6, 6), ""},
		{"valid thirty day rental", day(2025, 6, 1), day(2025, 7, 1), ""},
		{"start today rejected", day(2025, 5, 1), day(2025, 5, 10), "after today"},
		{"start in past rejected", day(2025, 4, 20), day(2025, 4, 28), "after today"},
		{"below minimum duration", day(2025, 6, 1), day(2025, 6, 4), "at least 5 days"},
		{"above maximum duration", day(2025, 6, 1), day(2025, 7, 5), "at most 30 days"},
		{"beyond advance horizon", day(2025, 8, 15), day(2025, 8, 25), "90 days in advance"},
		{"exactly at advance horizon", day(2025, 7, 30), day(2025, 8, 6), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDates(tt.start, tt.end)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateDates_TimeOfDayIgnored(t *testing.T) {
	v := newTestValidator(t)

	// Tomorrow at 08:00 still counts as strictly after today.
	start := time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 7, 22, 0, 0, 0, time.UTC)

	if err := v.ValidateDates(start, end); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_StructFields(t *testing.T) {
	v := newTestValidator(t)

	valid := &model.Booking{
		CarID:           "65a000000000000000000001",
		StartDate:       day(2025, 6, 1),
		EndDate:         day(2025, 6, 6),
		ClientFirstName: "Ivan",
		ClientLastName:  "Petrov",
		ClientEmail:     "ivan@example.com",
		ClientPhone:     "+359888123456",
	}
	if err := v.Validate(valid); err != nil {
		t.Fatalf("valid booking rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*model.Booking)
		wantErr string
	}{
		{"missing car id", func(b *model.Booking) { b.CarID = "" }, "CarID is required"},
		{"malformed car id", func(b *model.Booking) { b.CarID = "not-an-id" }, "ObjectID"},
		{"bad email", func(b *model.Booking) { b.ClientEmail = "not-an-email" }, "valid email"},
		{"end before start", func(b *model.Booking) { b.EndDate = day(2025, 5, 30) }, "EndDate must be after StartDate"},
		{"short first name", func(b *model.Booking) { b.ClientFirstName = "A" }, "at least 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := *valid
			tt.mutate(&booking)
			err := v.Validate(&booking)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	v := newTestValidator(t)

	t.Run("empty update rejected", func(t *testing.T) {
		err := v.ValidateUpdate(&model.BookingUpdate{})
		if err == nil {
			t.Fatal("expected error for empty update")
		}
		if !strings.Contains(err.Error(), "at least one") {
			t.Errorf("unexpected message: %q", err.Error())
		}
	})

	t.Run("status only is enough", func(t *testing.T) {
		if err := v.ValidateUpdate(&model.BookingUpdate{Status: model.StatusConfirmed}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		err := v.ValidateUpdate(&model.BookingUpdate{Status: "archived"})
		if err == nil {
			t.Fatal("expected error for unknown status")
		}
	})

	t.Run("notes only is enough", func(t *testing.T) {
		notes := "customer called to confirm pickup time"
		if err := v.ValidateUpdate(&model.BookingUpdate{Notes: &notes}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
