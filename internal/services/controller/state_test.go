package controller

import (
	"testing"

	"github.com/bbernstein/irmacro-go/internal/services/ir"
	"github.com/bbernstein/irmacro-go/internal/services/macrostore"
)

func effectKinds(effects []Effect) []EffectKind {
	kinds := make([]EffectKind, len(effects))
	for i, eff := range effects {
		kinds[i] = eff.Kind
	}
	return kinds
}

func TestTransitionTable(t *testing.T) {
	nec := ir.Command{Protocol: ir.ProtocolNEC, Value: 0x10, Bits: 32}
	unknown := ir.Command{Protocol: ir.ProtocolUnknown, Value: 0x10, Bits: 32}

	cases := []struct {
		name          string
		state         State
		event         Event
		recordingSlot int
		draftLen      int
		wantState     State
		wantEffects   []EffectKind
	}{
		{
			name:        "ready-to-record switch flipped to playback",
			state:       ReadyToRecord,
			event:       Event{Kind: EventModeLevel, Record: false},
			wantState:   ReadyToPlayback,
			wantEffects: []EffectKind{EffectSetModeIndicator},
		},
		{
			name:      "ready-to-record switch stays on record",
			state:     ReadyToRecord,
			event:     Event{Kind: EventModeLevel, Record: true},
			wantState: ReadyToRecord,
		},
		{
			name:      "button press starts recording",
			state:     ReadyToRecord,
			event:     Event{Kind: EventButtonPressed, Slot: 3},
			wantState: Recording,
			wantEffects: []EffectKind{
				EffectBeginDraft, EffectResumeReceiver, EffectSetModeIndicator,
			},
		},
		{
			name:          "decoded command appended while recording",
			state:         Recording,
			event:         Event{Kind: EventCommandDecoded, Command: nec},
			recordingSlot: 3,
			draftLen:      1,
			wantState:     Recording,
			wantEffects:   []EffectKind{EffectAppendDraft, EffectFlashCaptured},
		},
		{
			name:          "unknown protocol rejected while recording",
			state:         Recording,
			event:         Event{Kind: EventCommandDecoded, Command: unknown},
			recordingSlot: 3,
			draftLen:      1,
			wantState:     Recording,
			wantEffects:   []EffectKind{EffectFlashRejected},
		},
		{
			name:          "full draft drops further commands silently",
			state:         Recording,
			event:         Event{Kind: EventCommandDecoded, Command: nec},
			recordingSlot: 3,
			draftLen:      macrostore.MaxCommands,
			wantState:     Recording,
		},
		{
			name:          "re-press of the recording button commits",
			state:         Recording,
			event:         Event{Kind: EventButtonPressed, Slot: 3},
			recordingSlot: 3,
			draftLen:      2,
			wantState:     ReadyToRecord,
			wantEffects: []EffectKind{
				EffectCommitDraft, EffectPauseReceiver, EffectSetModeIndicator,
			},
		},
		{
			name:          "press of a different button while recording is ignored",
			state:         Recording,
			event:         Event{Kind: EventButtonPressed, Slot: 5},
			recordingSlot: 3,
			draftLen:      2,
			wantState:     Recording,
		},
		{
			name:          "switch flip mid-recording abandons the draft",
			state:         Recording,
			event:         Event{Kind: EventModeLevel, Record: false},
			recordingSlot: 3,
			draftLen:      2,
			wantState:     ReadyToPlayback,
			wantEffects: []EffectKind{
				EffectDiscardDraft, EffectPauseReceiver, EffectSetModeIndicator,
			},
		},
		{
			name:        "playback switch flipped to record",
			state:       ReadyToPlayback,
			event:       Event{Kind: EventModeLevel, Record: true},
			wantState:   ReadyToRecord,
			wantEffects: []EffectKind{EffectSetModeIndicator},
		},
		{
			name:        "button press in playback plays the slot",
			state:       ReadyToPlayback,
			event:       Event{Kind: EventButtonPressed, Slot: 3},
			wantState:   ReadyToPlayback,
			wantEffects: []EffectKind{EffectPlaySlot},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, effects := Transition(tc.state, tc.event, tc.recordingSlot, tc.draftLen)
			if next != tc.wantState {
				t.Errorf("state = %v, want %v", next, tc.wantState)
			}
			got := effectKinds(effects)
			if len(got) != len(tc.wantEffects) {
				t.Fatalf("effects = %v, want %v", got, tc.wantEffects)
			}
			for i := range got {
				if got[i] != tc.wantEffects[i] {
					t.Errorf("effect[%d] = %v, want %v", i, got[i], tc.wantEffects[i])
				}
			}
		})
	}
}

func TestTransitionCarriesPayloads(t *testing.T) {
	nec := ir.Command{Protocol: ir.ProtocolNEC, Value: 0x20DF10EF, Bits: 32}

	_, effects := Transition(ReadyToRecord, Event{Kind: EventButtonPressed, Slot: 6}, -1, 0)
	if effects[0].Slot != 6 {
		t.Errorf("begin-draft slot = %d, want 6", effects[0].Slot)
	}

	_, effects = Transition(Recording, Event{Kind: EventCommandDecoded, Command: nec}, 6, 0)
	if effects[0].Command != nec {
		t.Errorf("append-draft command = %+v, want %+v", effects[0].Command, nec)
	}

	_, effects = Transition(ReadyToPlayback, Event{Kind: EventButtonPressed, Slot: 2}, -1, 0)
	if effects[0].Slot != 2 {
		t.Errorf("play slot = %d, want 2", effects[0].Slot)
	}
}
