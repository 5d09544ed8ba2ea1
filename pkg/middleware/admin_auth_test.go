package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"sofcar/pkg/logger"
)

func adminTestHandler(t *testing.T, token string) http.Handler {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	log := logger.New(logger.Config{Output: io.Discard})
	return AdminAuth(token, log)(next)
}

func TestAdminAuth(t *testing.T) {
	tests := []struct {
		name           string
		token          string
		path           string
		presented      string
		expectedStatus int
	}{
		{"public path passes without token", "secret", "/bookings", "", http.StatusOK},
		{"admin path with valid token", "secret", "/admin/cars", "secret", http.StatusOK},
		{"admin path with wrong token", "secret", "/admin/cars", "wrong", http.StatusUnauthorized},
		{"admin path with missing token", "secret", "/admin/cars", "", http.StatusUnauthorized},
		{"admin surface disabled when unconfigured", "", "/admin/cars", "anything", http.StatusUnauthorized},
		{"public path unaffected when unconfigured", "", "/cars", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := adminTestHandler(t, tt.token)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.presented != "" {
				req.Header.Set(AdminTokenHeader, tt.presented)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestAdminAuth_PrefixMatchingIsExact(t *testing.T) {
	handler := adminTestHandler(t, "secret")

	// A path merely containing "admin" is not part of the admin surface.
	req := httptest.NewRequest(http.MethodGet, "/administrators", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}
