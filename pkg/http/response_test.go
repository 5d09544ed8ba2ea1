package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "sofcar/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"conflict", apperrors.Conflict("dates unavailable"), http.StatusConflict, apperrors.CodeConflict},
		{"not found", apperrors.NotFound("Car"), http.StatusNotFound, apperrors.CodeNotFound},
		{"rate limited", apperrors.RateLimited("slow down"), http.StatusTooManyRequests, apperrors.CodeRateLimited},
		{"unknown wrapped as internal", errors.New("boom"), http.StatusInternalServerError, apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %s, got %q", tt.wantCode, resp.Code)
			}
			if resp.Error == "" {
				t.Error("expected a human-readable error message")
			}
		})
	}
}

func TestWriteError_RateLimitedSetsRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, apperrors.RateLimited("slow down"))

	if got := rec.Header().Get("Retry-After"); got != "3600" {
		t.Errorf("expected Retry-After 3600, got %q", got)
	}
}
