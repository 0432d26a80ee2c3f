// Package gpio abstracts the raw digital I/O layer.
package gpio

import "sync"

// Pin identifies one digital line by its board-specific number.
type Pin int

// IO is the digital I/O driver contract consumed by the firmware.
type IO interface {
	ConfigureInput(pin Pin) error
	ConfigureOutput(pin Pin) error
	Read(pin Pin) (bool, error)
	Write(pin Pin, level bool) error
}

// Memory is an in-memory IO driver for tests and host-side simulation.
// Inputs idle high, matching pull-up wiring.
type Memory struct {
	mu     sync.Mutex
	levels map[Pin]bool
}

// NewMemory returns a Memory driver with no pins configured.
func NewMemory() *Memory {
	return &Memory{levels: make(map[Pin]bool)}
}

// ConfigureInput registers pin as an input. The level defaults to high
// unless it was already driven via SetInput.
func (m *Memory) ConfigureInput(pin Pin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.levels[pin]; !ok {
		m.levels[pin] = true
	}
	return nil
}

// ConfigureOutput registers pin as an output, initially low.
func (m *Memory) ConfigureOutput(pin Pin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.levels[pin]; !ok {
		m.levels[pin] = false
	}
	return nil
}

// Read returns the current level of pin.
func (m *Memory) Read(pin Pin) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.levels[pin], nil
}

// Write drives an output pin.
func (m *Memory) Write(pin Pin, level bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels[pin] = level
	return nil
}

// SetInput drives an input pin level from the outside, as the physical
// world would.
func (m *Memory) SetInput(pin Pin, level bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels[pin] = level
}

// Level reports the current level of pin.
func (m *Memory) Level(pin Pin) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.levels[pin]
}
