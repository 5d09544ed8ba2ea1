package lock

import (
	"context"
	"sync"
	"time"

	apperrors "sofcar/pkg/errors"
)

// CarLocker serializes booking creation per car. Acquire is fail-fast: a
// second caller holding the same car gets a Conflict immediately instead
// of queueing behind the first.
type CarLocker interface {
	Acquire(ctx context.Context, carID string) error
	Release(ctx context.Context, carID string) error
}

type memoryLock struct {
	expiresAt time.Time
}

// MemoryCarLocker is the single-instance implementation. Entries carry a
// TTL so a crashed request cannot leave a car locked forever.
type MemoryCarLocker struct {
	mu    sync.Mutex
	locks map[string]memoryLock
	ttl   time.Duration

	now func() time.Time
}

func NewMemoryCarLocker(ttl time.Duration) *MemoryCarLocker {
	return &MemoryCarLocker{
		locks: make(map[string]memoryLock),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (l *MemoryCarLocker) Acquire(_ context.Context, carID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if existing, held := l.locks[carID]; held && now.Before(existing.expiresAt) {
		return apperrors.Conflict("This car is currently being booked by another customer, please try again")
	}

	l.locks[carID] = memoryLock{expiresAt: now.Add(l.ttl)}
	return nil
}

func (l *MemoryCarLocker) Release(_ context.Context, carID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.locks, carID)
	return nil
}
