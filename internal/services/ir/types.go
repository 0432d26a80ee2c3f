// Package ir defines the decoded infrared command model and the
// receive/transmit engine contracts, plus the drivers that implement
// them: a serial-attached transceiver module and an in-memory simulator.
package ir

import "strings"

// Protocol identifies the signal encoding scheme of a command. It is a
// small enumerated value so it fits the single-byte field of the
// persisted command encoding.
type Protocol uint8

const (
	// ProtocolUnknown is the reserved sentinel for undecodable input.
	// It is never persisted.
	ProtocolUnknown Protocol = iota
	ProtocolNEC
	ProtocolNECExt
	ProtocolSony
	ProtocolRC5
	ProtocolRC6
	ProtocolSamsung
	ProtocolJVC
)

// String returns the wire name of the protocol.
func (p Protocol) String() string {
	switch p {
	case ProtocolNEC:
		return "NEC"
	case ProtocolNECExt:
		return "NECEXT"
	case ProtocolSony:
		return "SONY"
	case ProtocolRC5:
		return "RC5"
	case ProtocolRC6:
		return "RC6"
	case ProtocolSamsung:
		return "SAMSUNG"
	case ProtocolJVC:
		return "JVC"
	default:
		return "UNKNOWN"
	}
}

// ParseProtocol maps a wire name back to a Protocol. Unrecognized names
// parse as ProtocolUnknown.
func ParseProtocol(s string) Protocol {
	switch strings.ToUpper(s) {
	case "NEC":
		return ProtocolNEC
	case "NECEXT":
		return ProtocolNECExt
	case "SONY":
		return ProtocolSony
	case "RC5":
		return ProtocolRC5
	case "RC6":
		return ProtocolRC6
	case "SAMSUNG":
		return ProtocolSamsung
	case "JVC":
		return ProtocolJVC
	default:
		return ProtocolUnknown
	}
}

// Command is one decoded infrared command. Immutable once created.
type Command struct {
	Protocol Protocol
	Value    uint64
	Bits     uint8
}

// Receiver is the infrared receive engine. PollDecoded is non-blocking
// and may return a command with ProtocolUnknown for input the engine
// could not decode. The engine should be paused whenever no recording is
// in progress so it does not buffer in the background.
type Receiver interface {
	Enable() error
	Pause()
	Resume()
	PollDecoded() (Command, bool)
}

// Transmitter is the infrared transmit engine. Send blocks for the
// duration of the transmission and returns false on failure.
type Transmitter interface {
	Send(cmd Command, repeats int) bool
}
