// Package controller implements the recorder/player state machine that
// turns button presses into recorded and replayed infrared macros.
package controller

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bbernstein/irmacro-go/internal/services/clock"
	"github.com/bbernstein/irmacro-go/internal/services/gpio"
	"github.com/bbernstein/irmacro-go/internal/services/indicator"
	"github.com/bbernstein/irmacro-go/internal/services/input"
	"github.com/bbernstein/irmacro-go/internal/services/ir"
	"github.com/bbernstein/irmacro-go/internal/services/macrostore"
)

// Config holds controller wiring and timing.
type Config struct {
	ButtonPins    []gpio.Pin
	ModeSwitchPin gpio.Pin
	Debounce      time.Duration
	RecordPause   time.Duration // minimum gap between accepted commands while recording
	PlaybackDelay time.Duration // gap between transmitted commands during playback
	TickInterval  time.Duration
	SendRepeats   int
}

// Deps are the external collaborators the controller drives.
type Deps struct {
	Clock       clock.Clock
	IO          gpio.IO
	Receiver    ir.Receiver
	Transmitter ir.Transmitter
	Indicator   *indicator.Indicator
	Store       *macrostore.Store
	Bank        *macrostore.Bank
}

// Controller owns the macro bank, the debounced input lines and the
// current mode. It is single-threaded and cooperative: Run executes one
// Tick to completion before the next, and every blocking wait goes
// through the injected clock.
type Controller struct {
	cfg  Config
	deps Deps

	deb        *input.Debouncer
	buttons    []*input.Line
	modeSwitch *input.Line

	state         State
	recordingSlot int
	draft         macrostore.Macro
	acceptAfter   time.Time // inter-command pause horizon

	ctx context.Context
}

// New wires and primes the input lines, enables (then pauses) the
// receive engine and picks the initial state from the mode switch
// level.
func New(cfg Config, deps Deps) (*Controller, error) {
	if len(cfg.ButtonPins) != deps.Bank.NumSlots() {
		return nil, fmt.Errorf("controller: %d button pins for %d bank slots",
			len(cfg.ButtonPins), deps.Bank.NumSlots())
	}

	c := &Controller{
		cfg:           cfg,
		deps:          deps,
		recordingSlot: -1,
		ctx:           context.Background(),
	}
	c.deb = input.NewDebouncer(deps.IO, deps.Clock, cfg.Debounce)

	for _, pin := range cfg.ButtonPins {
		line := input.NewLine(pin, true) // buttons are wired active-low
		if err := c.deb.Setup(line); err != nil {
			return nil, fmt.Errorf("configure button pin %d: %w", pin, err)
		}
		c.buttons = append(c.buttons, line)
	}

	c.modeSwitch = input.NewLine(cfg.ModeSwitchPin, false) // high level selects record mode
	if err := c.deb.Setup(c.modeSwitch); err != nil {
		return nil, fmt.Errorf("configure mode switch pin %d: %w", cfg.ModeSwitchPin, err)
	}

	if err := deps.Receiver.Enable(); err != nil {
		return nil, fmt.Errorf("enable ir receiver: %w", err)
	}
	deps.Receiver.Pause() // stays paused until a recording starts

	if c.modeSwitch.Pressed() {
		c.state = ReadyToRecord
	} else {
		c.state = ReadyToPlayback
	}
	c.setModeIndicator()
	log.Printf("Controller starting in %s", c.state)
	return c, nil
}

// Run drives the cooperative control loop until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	c.ctx = ctx
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		c.Tick()
		c.deps.Clock.Sleep(c.cfg.TickInterval)
	}
}

// Tick runs one polling/dispatch pass to completion.
func (c *Controller) Tick() {
	// the mode switch has its own debounce horizon and is read in every
	// state
	c.deb.Poll(c.modeSwitch)
	record := c.modeSwitch.Pressed()

	switch c.state {
	case ReadyToRecord:
		if !record {
			c.dispatch(Event{Kind: EventModeLevel, Record: false})
			return
		}
		if slot := c.deb.ScanPressed(c.buttons); slot >= 0 {
			c.dispatch(Event{Kind: EventButtonPressed, Slot: slot})
		}

	case Recording:
		if !record {
			c.dispatch(Event{Kind: EventModeLevel, Record: false})
			return
		}
		// exclusive scan: only the recording line is polled so the
		// latency-sensitive receive engine loses as little time as
		// possible; presses on other buttons are intentionally missed
		if c.recordingSlot >= 0 &&
			c.deb.Poll(c.buttons[c.recordingSlot]) == input.EdgePressed {
			c.dispatch(Event{Kind: EventButtonPressed, Slot: c.recordingSlot})
			return
		}
		if cmd, ok := c.deps.Receiver.PollDecoded(); ok {
			if c.deps.Clock.Now().Before(c.acceptAfter) {
				// within the inter-command pause: re-detections of the
				// same transmission are consumed and dropped
				return
			}
			c.dispatch(Event{Kind: EventCommandDecoded, Command: cmd})
		}

	case ReadyToPlayback:
		if record {
			c.dispatch(Event{Kind: EventModeLevel, Record: true})
			return
		}
		if slot := c.deb.ScanPressed(c.buttons); slot >= 0 {
			c.dispatch(Event{Kind: EventButtonPressed, Slot: slot})
		}
	}
}

func (c *Controller) dispatch(ev Event) {
	next, effects := Transition(c.state, ev, c.recordingSlot, len(c.draft))
	c.state = next
	for _, eff := range effects {
		c.applyEffect(eff)
	}
}

func (c *Controller) applyEffect(eff Effect) {
	switch eff.Kind {
	case EffectBeginDraft:
		c.recordingSlot = eff.Slot
		c.draft = make(macrostore.Macro, 0, macrostore.MaxCommands)
		c.acceptAfter = time.Time{}
		log.Printf("Recording macro for button %d", eff.Slot)
	case EffectAppendDraft:
		c.draft = append(c.draft, eff.Command)
		c.acceptAfter = c.deps.Clock.Now().Add(c.cfg.RecordPause)
		log.Printf("Captured %s command %#x (%d bits), %d/%d",
			eff.Command.Protocol, eff.Command.Value, eff.Command.Bits,
			len(c.draft), macrostore.MaxCommands)
	case EffectCommitDraft:
		c.commitDraft(eff.Slot)
	case EffectDiscardDraft:
		if c.recordingSlot >= 0 {
			log.Printf("Recording for button %d abandoned", c.recordingSlot)
		}
		c.draft = nil
		c.recordingSlot = -1
	case EffectResumeReceiver:
		c.deps.Receiver.Resume()
	case EffectPauseReceiver:
		c.deps.Receiver.Pause()
	case EffectPlaySlot:
		c.playSlot(eff.Slot)
	case EffectFlashCaptured:
		c.deps.Indicator.FlashCaptured()
	case EffectFlashRejected:
		c.deps.Indicator.FlashRejected()
	case EffectSetModeIndicator:
		c.setModeIndicator()
	}
}

// commitDraft writes the draft into the bank slot and persists it in one
// synchronous full-slot rewrite. A zero-length draft unsets the slot.
func (c *Controller) commitDraft(slot int) {
	macro := append(macrostore.Macro(nil), c.draft...)
	c.deps.Bank.SetMacro(slot, macro)
	if err := c.deps.Store.SaveSlot(c.ctx, slot, macro); err != nil {
		log.Printf("Failed to persist macro for button %d: %v", slot, err)
		c.deps.Indicator.FlashRejected()
	} else {
		log.Printf("Stored macro for button %d (%d commands)", slot, len(macro))
	}
	c.draft = nil
	c.recordingSlot = -1
}

// playSlot transmits the stored macro in recorded order. A failed send
// flashes the failure pattern and playback continues with the remaining
// commands. An unset slot plays nothing.
func (c *Controller) playSlot(slot int) {
	macro := c.deps.Bank.Macro(slot)
	if len(macro) == 0 {
		return
	}
	log.Printf("Playing macro for button %d (%d commands)", slot, len(macro))
	c.deps.Indicator.PlaybackActive(true)
	for i, cmd := range macro {
		if !c.deps.Transmitter.Send(cmd, c.cfg.SendRepeats) {
			log.Printf("Transmission failed for command %d of button %d", i, slot)
			c.deps.Indicator.FlashSendFailed()
		}
		if i < len(macro)-1 {
			c.deps.Clock.Sleep(c.cfg.PlaybackDelay)
		}
	}
	c.deps.Indicator.PlaybackActive(false)
}

func (c *Controller) setModeIndicator() {
	switch c.state {
	case ReadyToRecord:
		c.deps.Indicator.SetRecordReady()
	case Recording:
		c.deps.Indicator.SetRecording()
	case ReadyToPlayback:
		c.deps.Indicator.SetPlayback()
	}
}
