// Package testutils provides deterministic generators, a manual clock and a
// recording caller for Aurora tests.
package testutils

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// Thread-safe counter for deterministic identity generation
	idCounter uint64
	idMutex   sync.Mutex
)

// GenerateIdentity returns a caller identity that is deterministic in test mode
// but random otherwise. Test identities look like
// 00000001-0000-4000-8000-000000000001, 00000002-0000-4000-8000-000000000002, ...
func GenerateIdentity(testMode bool) string {
	if testMode {
		return getDeterministicUUID()
	}
	return uuid.New().String()
}

// getDeterministicUUID keeps the UUID v4 layout so identities stay format-compatible.
func getDeterministicUUID() string {
	idMutex.Lock()
	defer idMutex.Unlock()

	idCounter++
	return fmt.Sprintf("%08x-0000-4000-8000-%012x", idCounter, idCounter)
}

// ResetTestCounters resets the deterministic counters.
func ResetTestCounters() {
	idMutex.Lock()
	defer idMutex.Unlock()
	idCounter = 0
}

// Clock is a manually advanced clock. Its zero time is 2025-01-01T00:00:00Z.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock at 2025-01-01T00:00:00Z.
func NewClock() *Clock {
	return &Clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current manual time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
