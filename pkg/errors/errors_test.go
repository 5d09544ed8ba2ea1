package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppErrorMessageFormats(t *testing.T) {
	plain := Conflict("car is currently being booked by another request")
	if plain.Error() != "CONFLICT: car is currently being booked by another request" {
		t.Errorf("unexpected message: %s", plain.Error())
	}

	cause := errors.New("connection refused")
	wrapped := Internal("failed to create booking", cause)
	if wrapped.Error() != "INTERNAL_ERROR: failed to create booking (caused by: connection refused)" {
		t.Errorf("unexpected wrapped message: %s", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected wrapped error to unwrap to its cause")
	}
}

func TestConstructorStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFound("Car"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad dates", nil), CodeValidation, http.StatusBadRequest},
		{"invalid input", InvalidInput("invalid car ID format"), CodeInvalidInput, http.StatusBadRequest},
		{"conflict", Conflict("dates unavailable"), CodeConflict, http.StatusConflict},
		{"rate limited", RateLimited("too many booking requests"), CodeRateLimited, http.StatusTooManyRequests},
		{"internal", Internal("record store rejected write", nil), CodeInternal, http.StatusInternalServerError},
		{"unavailable", Unavailable("Database"), CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.StatusCode())
			}
		})
	}
}

func TestNotFoundWithIDDetails(t *testing.T) {
	err := NotFoundWithID("Booking", "665f1c0a9b3e2d0001a4f001")
	if err.Details["resource"] != "Booking" {
		t.Errorf("expected resource detail, got %v", err.Details["resource"])
	}
	if err.Details["id"] != "665f1c0a9b3e2d0001a4f001" {
		t.Errorf("expected id detail, got %v", err.Details["id"])
	}
}

func TestAsAppErrorWrapsUnknownErrors(t *testing.T) {
	plain := errors.New("boom")
	appErr := AsAppError(plain)
	if appErr.Code != CodeInternal {
		t.Errorf("expected internal code, got %s", appErr.Code)
	}
	if !errors.Is(appErr, plain) {
		t.Error("expected original error preserved as cause")
	}

	conflict := Conflict("overlap")
	if AsAppError(conflict) != conflict {
		t.Error("expected AppError passed through unchanged")
	}
}

func TestIsCode(t *testing.T) {
	err := RateLimited("slow down")
	if !IsCode(err, CodeRateLimited) {
		t.Error("expected IsCode to match")
	}
	if IsCode(err, CodeConflict) {
		t.Error("expected IsCode to reject other codes")
	}
	if IsCode(errors.New("plain"), CodeInternal) {
		t.Error("expected IsCode to reject non-AppError")
	}
}
