package ir

// NEC raw codes are 32 bits on the wire, LSB first: address low byte,
// address high byte, command byte, inverted command byte. 8-bit
// addresses carry the inverted low byte in the high position as a
// validation check.

// MakeRawNEC assembles a raw 32-bit NEC code from an address and a
// command byte.
func MakeRawNEC(address uint16, command byte) uint32 {
	low, high := splitNECAddress(address)
	return uint32(^command)<<24 | uint32(command)<<16 | uint32(high)<<8 | uint32(low)
}

// SplitRawNEC breaks a raw NEC code into its address and command,
// validating the inverted command byte. ok is false when validation
// fails.
func SplitRawNEC(data uint32) (address uint16, command byte, ok bool) {
	low := byte(data)
	high := byte(data >> 8)
	command = byte(data >> 16)
	if byte(data>>24) != ^command {
		return 0, 0, false
	}
	return makeNECAddress(low, high), command, true
}

func splitNECAddress(address uint16) (low, high byte) {
	low = byte(address)
	high = byte(address >> 8)
	if high == 0 {
		high = ^low
	}
	return low, high
}

func makeNECAddress(low, high byte) uint16 {
	if high == ^low {
		// inverse validation form, an 8-bit address
		return uint16(low)
	}
	return uint16(high)<<8 | uint16(low)
}
