// Package clock provides the time source for the control loop.
//
// All debounce horizons, inter-command pauses and blocking delays go
// through a Clock so tests can run against a simulated one instead of
// real elapsed time.
package clock

import "time"

// Clock is a monotonic millisecond-resolution time source.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// System is the real wall clock.
type System struct{}

// Now returns the current time.
func (System) Now() time.Time { return time.Now() }

// Sleep blocks for d.
func (System) Sleep(d time.Duration) { time.Sleep(d) }

// Simulated is a manually advanced clock for tests. Sleep advances the
// clock immediately instead of blocking.
type Simulated struct {
	now time.Time
}

// NewSimulated returns a simulated clock starting at the Unix epoch.
func NewSimulated() *Simulated {
	return &Simulated{now: time.Unix(0, 0)}
}

// Now returns the simulated time.
func (s *Simulated) Now() time.Time { return s.now }

// Sleep advances the simulated time by d without blocking.
func (s *Simulated) Sleep(d time.Duration) { s.now = s.now.Add(d) }

// Advance moves the simulated time forward by d.
func (s *Simulated) Advance(d time.Duration) { s.now = s.now.Add(d) }
