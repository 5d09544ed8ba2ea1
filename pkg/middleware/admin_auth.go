package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"sofcar/pkg/logger"
)

const (
	AdminTokenHeader = "X-Admin-Token"
	adminPathPrefix  = "/admin/"
)

// AdminAuth guards fleet-management and booking-management routes. Only
// requests under /admin/ are gated; when no token is configured the admin
// surface is disabled entirely.
func AdminAuth(token string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, adminPathPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			if token == "" {
				log.Warn("Admin route accessed with no admin token configured",
					"request_id", RequestID(r.Context()),
					"path", r.URL.Path,
				)
				rejectUnauthorized(w)
				return
			}

			presented := r.Header.Get(AdminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				log.Warn("Admin authentication failed",
					"request_id", RequestID(r.Context()),
					"path", r.URL.Path,
					"method", r.Method,
				)
				rejectUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rejectUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}
