package ratelimit

import (
	"testing"
	"time"

	apperrors "sofcar/pkg/errors"
)

func newTestLimiter(limit int, window time.Duration, now *time.Time) *FixedWindowLimiter {
	limiter := &FixedWindowLimiter{
		entries: make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
		stopCh:  make(chan struct{}),
		now:     func() time.Time { return *now },
	}
	return limiter
}

func TestFixedWindowLimiter_AdmitsUpToLimit(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := newTestLimiter(5, time.Hour, &now)

	for i := 0; i < 5; i++ {
		if err := limiter.Admit("10.0.0.1"); err != nil {
			t.Fatalf("admission %d: unexpected error: %v", i+1, err)
		}
	}

	err := limiter.Admit("10.0.0.1")
	if err == nil {
		t.Fatal("expected sixth admission to be rejected")
	}
	if !apperrors.IsCode(err, apperrors.CodeRateLimited) {
		t.Errorf("expected code %s, got %v", apperrors.CodeRateLimited, err)
	}
}

func TestFixedWindowLimiter_KeysAreIndependent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := newTestLimiter(1, time.Hour, &now)

	if err := limiter.Admit("10.0.0.1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := limiter.Admit("10.0.0.1"); err == nil {
		t.Fatal("expected second admission for same key to be rejected")
	}
	if err := limiter.Admit("10.0.0.2"); err != nil {
		t.Errorf("different key should not be affected, got: %v", err)
	}
}

func TestFixedWindowLimiter_WindowResets(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := newTestLimiter(2, time.Hour, &now)

	_ = limiter.Admit("10.0.0.1")
	_ = limiter.Admit("10.0.0.1")
	if err := limiter.Admit("10.0.0.1"); err == nil {
		t.Fatal("expected rejection inside window")
	}

	now = now.Add(time.Hour + time.Minute)

	if err := limiter.Admit("10.0.0.1"); err != nil {
		t.Errorf("expected admission after window reset, got: %v", err)
	}
}

func TestFixedWindowLimiter_EmptyKeyAlwaysAdmitted(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := newTestLimiter(1, time.Hour, &now)

	for i := 0; i < 10; i++ {
		if err := limiter.Admit(""); err != nil {
			t.Fatalf("empty key should never be limited, got: %v", err)
		}
	}
}
