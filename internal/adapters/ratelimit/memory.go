package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/versus/api/internal/core/ports"
)

const sweepInterval = 5 * time.Minute

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryStore is a fixed-window counter held in process memory. It is
// correct only for a single-process deployment; multi-instance deployments
// need the Redis store so all instances share one counter.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]entry
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

var _ ports.RateLimiter = (*MemoryStore)(nil)

func (s *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.maybeSweep(now)

	e, ok := s.entries[key]
	if !ok || now.After(e.resetAt) {
		s.entries[key] = entry{count: 1, resetAt: now.Add(window)}
		return true, nil
	}

	if e.count >= limit {
		return false, nil
	}

	e.count++
	s.entries[key] = e
	return true, nil
}

// maybeSweep drops expired windows. Piggybacks on Allow so the store needs
// no background goroutine.
func (s *MemoryStore) maybeSweep(now time.Time) {
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	for key, e := range s.entries {
		if now.After(e.resetAt) {
			delete(s.entries, key)
		}
	}
	s.lastSweep = now
}
