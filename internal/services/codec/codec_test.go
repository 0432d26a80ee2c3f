package codec

import (
	"testing"

	"github.com/bbernstein/irmacro-go/internal/services/ir"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	commands := []ir.Command{
		{Protocol: ir.ProtocolNEC, Value: 0x20DF10EF, Bits: 32},
		{Protocol: ir.ProtocolNECExt, Value: 0x04FB08F7, Bits: 32},
		{Protocol: ir.ProtocolSony, Value: 0xA90, Bits: 12},
		{Protocol: ir.ProtocolRC5, Value: 0x1C, Bits: 13},
		{Protocol: ir.ProtocolRC6, Value: 0xFFFF, Bits: 20},
		{Protocol: ir.ProtocolSamsung, Value: 0xE0E040BF, Bits: 32},
		{Protocol: ir.ProtocolJVC, Value: 0, Bits: 1},
		{Protocol: ir.ProtocolNEC, Value: 0xFFFFFFFFFFFF, Bits: 48}, // widest representable payload
	}

	for _, cmd := range commands {
		word, err := Encode(cmd)
		if err != nil {
			t.Fatalf("Encode(%+v) failed: %v", cmd, err)
		}
		got := Decode(word)
		if got != cmd {
			t.Errorf("Decode(Encode(%+v)) = %+v", cmd, got)
		}
	}
}

func TestEncodeFieldLayout(t *testing.T) {
	word, err := Encode(ir.Command{Protocol: ir.ProtocolNEC, Value: 0x20DF10EF, Bits: 32})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if got := uint8(word >> 56); got != 32 {
		t.Errorf("size byte = %d, want 32", got)
	}
	if got := ir.Protocol(word >> 48); got != ir.ProtocolNEC {
		t.Errorf("protocol byte = %d, want %d", got, ir.ProtocolNEC)
	}
	if got := word & 0xFFFFFFFFFFFF; got != 0x20DF10EF {
		t.Errorf("value field = %#x, want 0x20DF10EF", got)
	}
}

func TestEncodeRejectsUnknownProtocol(t *testing.T) {
	_, err := Encode(ir.Command{Protocol: ir.ProtocolUnknown, Value: 0x10, Bits: 32})
	if err != ErrUnknownProtocol {
		t.Errorf("Encode(unknown) err = %v, want ErrUnknownProtocol", err)
	}
}

func TestEncodeRejectsWideValue(t *testing.T) {
	_, err := Encode(ir.Command{Protocol: ir.ProtocolNEC, Value: 1 << 48, Bits: 64})
	if err != ErrValueTooWide {
		t.Errorf("Encode(49-bit value) err = %v, want ErrValueTooWide", err)
	}
}
