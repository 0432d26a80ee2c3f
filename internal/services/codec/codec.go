// Package codec packs a decoded infrared command into a single 64-bit
// word for persistence and unpacks it again.
//
// Word layout, high to low:
//
//	bits 63..56  bit length of the payload
//	bits 55..48  protocol identifier
//	bits 47..0   command payload
//
// The 48-bit payload field is a deliberate trade-off: no supported
// protocol produces a wider payload, and it keeps one command to one
// stored word.
package codec

import (
	"errors"

	"github.com/bbernstein/irmacro-go/internal/services/ir"
)

const (
	valueBits = 48
	valueMask = uint64(1)<<valueBits - 1

	protocolShift = 48
	sizeShift     = 56
)

var (
	// ErrUnknownProtocol rejects the reserved unknown sentinel, which
	// must never be persisted.
	ErrUnknownProtocol = errors.New("codec: unknown protocol is not encodable")
	// ErrValueTooWide rejects payloads that do not fit the 48-bit field.
	ErrValueTooWide = errors.New("codec: command value exceeds 48 bits")
)

// Encode packs cmd into one word. Decode(Encode(cmd)) == cmd for every
// representable command.
func Encode(cmd ir.Command) (uint64, error) {
	if cmd.Protocol == ir.ProtocolUnknown {
		return 0, ErrUnknownProtocol
	}
	if cmd.Value&^valueMask != 0 {
		return 0, ErrValueTooWide
	}
	return uint64(cmd.Bits)<<sizeShift | uint64(cmd.Protocol)<<protocolShift | cmd.Value, nil
}

// Decode is the exact inverse of Encode.
func Decode(word uint64) ir.Command {
	return ir.Command{
		Protocol: ir.Protocol(word >> protocolShift),
		Value:    word & valueMask,
		Bits:     uint8(word >> sizeShift),
	}
}
