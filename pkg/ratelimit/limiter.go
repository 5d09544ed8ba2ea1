package ratelimit

import (
	"sync"
	"time"

	apperrors "sofcar/pkg/errors"
)

// Limiter admits or rejects an action for a caller-supplied key,
// typically the client IP of a booking submission.
type Limiter interface {
	Admit(key string) error
	Stop()
}

type windowEntry struct {
	count     int
	windowEnd time.Time
}

// FixedWindowLimiter allows up to limit admissions per key within a fixed
// window. The counter resets when the window elapses rather than sliding.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	limit   int
	window  time.Duration
	stopCh  chan struct{}

	now func() time.Time
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	limiter := &FixedWindowLimiter{
		entries: make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
		stopCh:  make(chan struct{}),
		now:     time.Now,
	}

	go limiter.cleanup()

	return limiter
}

func (rl *FixedWindowLimiter) Admit(key string) error {
	if key == "" {
		return nil
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	entry, exists := rl.entries[key]
	if !exists || now.After(entry.windowEnd) {
		rl.entries[key] = &windowEntry{
			count:     1,
			windowEnd: now.Add(rl.window),
		}
		return nil
	}

	if entry.count >= rl.limit {
		return apperrors.RateLimited("Too many booking attempts, please try again later")
	}

	entry.count++
	return nil
}

func (rl *FixedWindowLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for key, entry := range rl.entries {
				if now.After(entry.windowEnd) {
					delete(rl.entries, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *FixedWindowLimiter) Stop() {
	close(rl.stopCh)
}
