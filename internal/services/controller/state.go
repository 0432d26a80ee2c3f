package controller

import (
	"github.com/bbernstein/irmacro-go/internal/services/ir"
	"github.com/bbernstein/irmacro-go/internal/services/macrostore"
)

// State enumerates the controller modes. Exactly one is active.
type State int

const (
	ReadyToRecord State = iota
	Recording
	ReadyToPlayback
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case ReadyToRecord:
		return "ReadyToRecord"
	case Recording:
		return "Recording"
	case ReadyToPlayback:
		return "ReadyToPlayback"
	default:
		return "Invalid"
	}
}

// EventKind tags an Event.
type EventKind int

const (
	// EventModeLevel reports the debounced mode-switch level.
	EventModeLevel EventKind = iota
	// EventButtonPressed reports a debounced press edge on a macro button.
	EventButtonPressed
	// EventCommandDecoded reports a decoded infrared command. The caller
	// only emits it once the inter-command pause has elapsed.
	EventCommandDecoded
)

// Event is one input to the transition function.
type Event struct {
	Kind    EventKind
	Record  bool       // EventModeLevel: true when the switch selects record mode
	Slot    int        // EventButtonPressed
	Command ir.Command // EventCommandDecoded
}

// EffectKind tags an Effect.
type EffectKind int

const (
	// EffectBeginDraft starts a fresh recording draft for Slot.
	EffectBeginDraft EffectKind = iota
	// EffectAppendDraft appends Command to the draft and re-arms the
	// inter-command pause.
	EffectAppendDraft
	// EffectCommitDraft writes the draft into the bank slot and persists
	// it, whatever its length.
	EffectCommitDraft
	// EffectDiscardDraft abandons the draft without saving anything.
	EffectDiscardDraft
	// EffectResumeReceiver and EffectPauseReceiver bracket the receive
	// engine around the Recording state.
	EffectResumeReceiver
	EffectPauseReceiver
	// EffectPlaySlot transmits the macro stored in Slot.
	EffectPlaySlot
	// EffectFlashCaptured and EffectFlashRejected acknowledge an
	// accepted or rejected sample on the indicator.
	EffectFlashCaptured
	EffectFlashRejected
	// EffectSetModeIndicator refreshes the steady mode color.
	EffectSetModeIndicator
)

// Effect is one side effect requested by a transition.
type Effect struct {
	Kind    EffectKind
	Slot    int
	Command ir.Command
}

// Transition computes the next state and the side effects of one event.
// recordingSlot and draftLen describe the in-progress recording; they
// are meaningful only while s is Recording. Transition is pure so the
// whole table is testable without hardware or timing.
func Transition(s State, ev Event, recordingSlot, draftLen int) (State, []Effect) {
	switch s {
	case ReadyToRecord:
		switch ev.Kind {
		case EventModeLevel:
			if !ev.Record {
				return ReadyToPlayback, []Effect{{Kind: EffectSetModeIndicator}}
			}
		case EventButtonPressed:
			return Recording, []Effect{
				{Kind: EffectBeginDraft, Slot: ev.Slot},
				{Kind: EffectResumeReceiver},
				{Kind: EffectSetModeIndicator},
			}
		}

	case Recording:
		switch ev.Kind {
		case EventModeLevel:
			if !ev.Record {
				// switching away abandons the draft; a macro is either
				// fully captured or not saved at all
				return ReadyToPlayback, []Effect{
					{Kind: EffectDiscardDraft},
					{Kind: EffectPauseReceiver},
					{Kind: EffectSetModeIndicator},
				}
			}
		case EventButtonPressed:
			if ev.Slot == recordingSlot {
				return ReadyToRecord, []Effect{
					{Kind: EffectCommitDraft, Slot: recordingSlot},
					{Kind: EffectPauseReceiver},
					{Kind: EffectSetModeIndicator},
				}
			}
		case EventCommandDecoded:
			if ev.Command.Protocol == ir.ProtocolUnknown {
				return Recording, []Effect{{Kind: EffectFlashRejected}}
			}
			if draftLen >= macrostore.MaxCommands {
				// hard cap, drop silently
				return Recording, nil
			}
			return Recording, []Effect{
				{Kind: EffectAppendDraft, Command: ev.Command},
				{Kind: EffectFlashCaptured},
			}
		}

	case ReadyToPlayback:
		switch ev.Kind {
		case EventModeLevel:
			if ev.Record {
				return ReadyToRecord, []Effect{{Kind: EffectSetModeIndicator}}
			}
		case EventButtonPressed:
			return ReadyToPlayback, []Effect{{Kind: EffectPlaySlot, Slot: ev.Slot}}
		}
	}
	return s, nil
}
