package ir

import "sync"

// SentCommand records one Simulator transmission.
type SentCommand struct {
	Command Command
	Repeats int
}

// Simulator is an in-memory Receiver and Transmitter for tests and
// host-side runs without an attached transceiver module.
type Simulator struct {
	mu       sync.Mutex
	enabled  bool
	paused   bool
	queue    []Command
	sent     []SentCommand
	failures int
}

// NewSimulator returns a Simulator with nothing queued.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Enable marks the simulator ready.
func (s *Simulator) Enable() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = true
	return nil
}

// Pause stops PollDecoded from returning queued commands.
func (s *Simulator) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
}

// Resume re-enables PollDecoded.
func (s *Simulator) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
}

// Paused reports whether the simulator is paused.
func (s *Simulator) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// QueueDecoded appends commands the receiver side will hand out.
func (s *Simulator) QueueDecoded(cmds ...Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, cmds...)
}

// PollDecoded pops the next queued command unless paused or disabled.
func (s *Simulator) PollDecoded() (Command, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || s.paused || len(s.queue) == 0 {
		return Command{}, false
	}
	cmd := s.queue[0]
	s.queue = s.queue[1:]
	return cmd, true
}

// Send records the transmission. It fails while a FailSends budget
// remains.
func (s *Simulator) Send(cmd Command, repeats int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, SentCommand{Command: cmd, Repeats: repeats})
	if s.failures > 0 {
		s.failures--
		return false
	}
	return true
}

// FailSends makes the next n Send calls report failure.
func (s *Simulator) FailSends(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = n
}

// Sent returns a copy of every transmission recorded so far.
func (s *Simulator) Sent() []SentCommand {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SentCommand, len(s.sent))
	copy(out, s.sent)
	return out
}
