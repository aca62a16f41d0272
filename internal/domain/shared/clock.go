package shared

import (
	"sync"
	"time"
)

// Clock supplies the timestamps written into exported and saved builds
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// NewRealClock returns the system clock
func NewRealClock() Clock {
	return &RealClock{}
}

// Now is UTC at whole seconds; exported_at carries no fraction.
func (*RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// MockClock is a settable clock for tests
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
}

// NewMockClock starts a MockClock at start
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{CurrentTime: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CurrentTime
}

// Advance moves the clock forward by d
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CurrentTime = m.CurrentTime.Add(d)
}
