// Package macrostore holds the in-memory macro bank and persists it
// through the durable key-value entry store.
package macrostore

import (
	"context"
	"fmt"
	"log"

	"github.com/bbernstein/irmacro-go/internal/database/repositories"
	"github.com/bbernstein/irmacro-go/internal/services/codec"
	"github.com/bbernstein/irmacro-go/internal/services/ir"
)

// MaxCommands is the capacity of one macro.
const MaxCommands = 16

// Macro is an ordered sequence of recorded commands for one button.
// Playback order equals recording order. An empty macro means the
// button is unset.
type Macro []ir.Command

// Bank holds one macro per button slot. It is owned by the controller;
// the only external view of it is through Store.
type Bank struct {
	macros []Macro
}

// NewBank returns a bank with numSlots empty slots.
func NewBank(numSlots int) *Bank {
	return &Bank{macros: make([]Macro, numSlots)}
}

// NumSlots returns the number of button slots.
func (b *Bank) NumSlots() int { return len(b.macros) }

// Macro returns the macro in slot, nil when unset or out of range.
func (b *Bank) Macro(slot int) Macro {
	if slot < 0 || slot >= len(b.macros) {
		return nil
	}
	return b.macros[slot]
}

// SetMacro replaces the macro in slot. An empty macro unsets the slot.
func (b *Bank) SetMacro(slot int, m Macro) {
	if slot < 0 || slot >= len(b.macros) {
		return
	}
	if len(m) == 0 {
		b.macros[slot] = nil
		return
	}
	b.macros[slot] = m
}

// Store reads and writes macros through the entry repository: one
// length byte per slot plus one encoded word per command. The key
// derivation scheme is an internal detail of this package.
type Store struct {
	entries  *repositories.EntryRepository
	numSlots int
}

// NewStore creates a Store over entries for numSlots button slots.
func NewStore(entries *repositories.EntryRepository, numSlots int) *Store {
	return &Store{entries: entries, numSlots: numSlots}
}

func lengthKey(slot int) string { return fmt.Sprintf("macro/%d/len", slot) }

func commandKey(slot, index int) string { return fmt.Sprintf("macro/%d/%d", slot, index) }

// LoadBank reads every slot into a fresh bank. Slots with no stored
// length, or length zero, stay unset. A slot whose stored words decode
// to the unknown protocol is treated as corrupt and left unset rather
// than failing startup.
func (s *Store) LoadBank(ctx context.Context) (*Bank, error) {
	bank := NewBank(s.numSlots)
	for slot := 0; slot < s.numSlots; slot++ {
		length, ok, err := s.entries.GetByte(ctx, lengthKey(slot))
		if err != nil {
			return nil, fmt.Errorf("load macro length for slot %d: %w", slot, err)
		}
		if !ok || length == 0 {
			continue
		}
		if int(length) > MaxCommands {
			log.Printf("Slot %d claims %d commands, clamping to %d", slot, length, MaxCommands)
			length = MaxCommands
		}

		macro := make(Macro, 0, length)
		corrupt := false
		for i := 0; i < int(length); i++ {
			word, ok, err := s.entries.GetWord(ctx, commandKey(slot, i))
			if err != nil {
				return nil, fmt.Errorf("load macro command %d for slot %d: %w", i, slot, err)
			}
			cmd := codec.Decode(word)
			if !ok || cmd.Protocol == ir.ProtocolUnknown {
				corrupt = true
				break
			}
			macro = append(macro, cmd)
		}
		if corrupt {
			log.Printf("Slot %d holds a corrupt macro, leaving it unset", slot)
			continue
		}
		bank.SetMacro(slot, macro)
	}
	return bank, nil
}

// SaveSlot rewrites the whole slot: every command word, then the length
// byte. The length goes last so a write interrupted mid-slot never
// claims more commands than were stored.
func (s *Store) SaveSlot(ctx context.Context, slot int, m Macro) error {
	if slot < 0 || slot >= s.numSlots {
		return fmt.Errorf("save macro: slot %d out of range", slot)
	}
	if len(m) > MaxCommands {
		return fmt.Errorf("save macro: %d commands exceeds capacity %d", len(m), MaxCommands)
	}
	for i, cmd := range m {
		word, err := codec.Encode(cmd)
		if err != nil {
			return fmt.Errorf("encode macro command %d for slot %d: %w", i, slot, err)
		}
		if err := s.entries.PutWord(ctx, commandKey(slot, i), word); err != nil {
			return fmt.Errorf("save macro command %d for slot %d: %w", i, slot, err)
		}
	}
	if err := s.entries.PutByte(ctx, lengthKey(slot), byte(len(m))); err != nil {
		return fmt.Errorf("save macro length for slot %d: %w", slot, err)
	}
	return nil
}
