package clock

import (
	"sync"
	"time"

	"github.com/renato0307/pomar/internal/ports"
)

// System implements ports.Clock using the wall clock
type System struct{}

var _ ports.Clock = System{}

// Now returns the current time
func (System) Now() time.Time {
	return time.Now()
}

// Manual implements ports.Clock with a time that only moves when told to.
// Used by tests and by replaying backdated events.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

var _ ports.Clock = (*Manual)(nil)

// NewManual creates a manual clock set to now
func NewManual(now time.Time) *Manual {
	return &Manual{now: now}
}

// Now returns the current manual time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward (or back, for negative d)
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set moves the clock to t
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}
