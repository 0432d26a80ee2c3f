package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Line protocol spoken with the serial-attached transceiver module.
// The module reports decoded commands as "RX <proto> <hexvalue> <bits>"
// and accepts "TX <proto> <hexvalue> <bits> <repeats>" answered with
// "OK" or "ERR". "PAUSE"/"RESUME" gate decoding, "TOL n" and "MIN n"
// tune the decoder.

func formatSendLine(cmd Command, repeats int) string {
	return fmt.Sprintf("TX %s %X %d %d", cmd.Protocol, cmd.Value, cmd.Bits, repeats)
}

func parseDecodedLine(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "RX" {
		return Command{}, fmt.Errorf("malformed rx frame %q", line)
	}
	value, err := strconv.ParseUint(fields[2], 16, 64)
	if err != nil {
		return Command{}, fmt.Errorf("malformed rx value %q: %w", fields[2], err)
	}
	bits, err := strconv.ParseUint(fields[3], 10, 8)
	if err != nil {
		return Command{}, fmt.Errorf("malformed rx bit length %q: %w", fields[3], err)
	}
	return Command{
		Protocol: ParseProtocol(fields[1]),
		Value:    value,
		Bits:     uint8(bits),
	}, nil
}
