// Package clock provides the time source used to stamp cookie expiries.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by time.Now.
type System struct{}

// Now returns the current system time.
func (System) Now() time.Time {
	return time.Now()
}

// Manual is a Clock for tests whose time only moves when told to.
// It is safe for concurrent use since HTTP handlers read it from their own
// goroutines.
type Manual struct {
	mu      sync.Mutex
	current time.Time
}

// NewManual creates a Manual clock set to t.
// If t is zero, it starts at 2001-09-09 to keep cookie dates well formed.
func NewManual(t time.Time) *Manual {
	if t.IsZero() {
		t = time.Unix(1000000000, 0).UTC()
	}
	return &Manual{current: t}
}

// Now returns the clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Advance moves the clock forward by d.
// Panics if d is negative.
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		panic("clock.Manual.Advance: duration must be non-negative")
	}
	m.mu.Lock()
	m.current = m.current.Add(d)
	m.mu.Unlock()
}
