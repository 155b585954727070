package throttle

import (
	"context"
	"sync"
	"time"
)

// MemoryThrottle is a process-local last-call-time limiter. It is a strict
// single-slot check, not a token bucket: a client is allowed when at least
// the window has elapsed since its last accepted call.
//
// Entries are never evicted automatically; callers that care about memory
// growth across many distinct clients should run Sweep periodically.
type MemoryThrottle struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
	now    func() time.Time
}

func NewMemoryThrottle(window time.Duration) *MemoryThrottle {
	return &MemoryThrottle{
		window: window,
		last:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// Allow reports whether clientID may make a request now, recording the
// call time when it may.
func (m *MemoryThrottle) Allow(ctx context.Context, clientID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if last, ok := m.last[clientID]; ok && now.Sub(last) < m.window {
		return false, nil
	}

	m.last[clientID] = now
	return true, nil
}

// Sweep drops entries older than maxAge and returns how many were removed.
func (m *MemoryThrottle) Sweep(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxAge)
	removed := 0
	for id, last := range m.last {
		if last.Before(cutoff) {
			delete(m.last, id)
			removed++
		}
	}

	return removed
}
