// Package input converts noisy raw pin levels into debounced press and
// release edges.
package input

import (
	"time"

	"github.com/bbernstein/irmacro-go/internal/services/clock"
	"github.com/bbernstein/irmacro-go/internal/services/gpio"
)

// Edge is a debounced transition reported by Poll.
type Edge int

const (
	EdgeNone Edge = iota
	EdgePressed
	EdgeReleased
)

// Line is one monitored digital input together with its debounce state:
// the last debounced logical level and the time after which the next
// raw change may be accepted.
type Line struct {
	pin       gpio.Pin
	activeLow bool
	pressed   bool
	horizon   time.Time
}

// NewLine returns a line for pin. Active-low lines read pressed when
// the raw level is low (pull-up wiring).
func NewLine(pin gpio.Pin, activeLow bool) *Line {
	return &Line{pin: pin, activeLow: activeLow}
}

// Pin returns the pin the line monitors.
func (l *Line) Pin() gpio.Pin { return l.pin }

// Pressed reports the last debounced logical state.
func (l *Line) Pressed() bool { return l.pressed }

func (l *Line) logical(raw bool) bool {
	if l.activeLow {
		return !raw
	}
	return raw
}

// Debouncer polls lines against a shared debounce delay.
type Debouncer struct {
	io    gpio.IO
	clock clock.Clock
	delay time.Duration
}

// NewDebouncer creates a debouncer over io with the given delay.
func NewDebouncer(io gpio.IO, clk clock.Clock, delay time.Duration) *Debouncer {
	return &Debouncer{io: io, clock: clk, delay: delay}
}

// Setup configures the pin as an input and primes the line from its
// current level so the first poll does not report a phantom edge.
func (d *Debouncer) Setup(line *Line) error {
	if err := d.io.ConfigureInput(line.pin); err != nil {
		return err
	}
	raw, err := d.io.Read(line.pin)
	if err != nil {
		return err
	}
	line.pressed = line.logical(raw)
	return nil
}

// Poll reports at most one edge per accepted level change. A change is
// accepted only once the line's debounce horizon has passed; accepting
// it re-arms the horizon. A bouncing line therefore never produces
// spurious edges, and a held line produces exactly one press.
func (d *Debouncer) Poll(line *Line) Edge {
	now := d.clock.Now()
	if now.Before(line.horizon) {
		return EdgeNone
	}
	raw, err := d.io.Read(line.pin)
	if err != nil {
		return EdgeNone
	}
	level := line.logical(raw)
	if level == line.pressed {
		return EdgeNone
	}
	line.pressed = level
	line.horizon = now.Add(d.delay)
	if level {
		return EdgePressed
	}
	return EdgeReleased
}

// ScanPressed polls lines in fixed index order and returns the index of
// the first press this pass, or -1. A press on a later line keeps its
// re-armed horizon but is put back, so it surfaces on a following pass
// instead of being lost.
func (d *Debouncer) ScanPressed(lines []*Line) int {
	hit := -1
	for i, line := range lines {
		if d.Poll(line) != EdgePressed {
			continue
		}
		if hit == -1 {
			hit = i
			continue
		}
		line.pressed = false
	}
	return hit
}
