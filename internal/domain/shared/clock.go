package shared

import (
	"sync"
	"time"
)

// Clock supplies run timestamps. Tests swap in MockClock.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time in UTC
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

func NewRealClock() Clock {
	return RealClock{}
}

// MockClock only moves when told to. Safe for use from sweep workers.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock starts at the given time, or at the current time when zero.
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now().UTC()
	}
	return &MockClock{now: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}
