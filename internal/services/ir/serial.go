package ir

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/tarm/serial"
)

const (
	// defaultAckTimeout bounds how long Send waits for the module to
	// acknowledge a transmission.
	defaultAckTimeout = 2 * time.Second
	// decodedBufferSize is how many decoded commands may sit unread
	// before the driver starts dropping frames.
	decodedBufferSize = 16
)

// SerialConfig configures the serial-attached transceiver module.
type SerialConfig struct {
	Port string
	Baud int

	// TolerancePct is the decode timing tolerance pushed to the module
	// at Enable. MinUnknownBits is the shortest burst the module will
	// report as an unknown-protocol command.
	TolerancePct   int
	MinUnknownBits int

	// AckTimeout overrides the transmit acknowledgement timeout.
	AckTimeout time.Duration
}

// SerialTransceiver implements Receiver and Transmitter over a line
// protocol with an external decoder module on a serial port.
type SerialTransceiver struct {
	cfg SerialConfig

	mu     sync.Mutex
	port   io.ReadWriteCloser
	paused bool

	decoded chan Command
	acks    chan bool
}

// NewSerialTransceiver returns an unopened transceiver; call Enable to
// open the port and start reading.
func NewSerialTransceiver(cfg SerialConfig) *SerialTransceiver {
	if cfg.AckTimeout <= 0 {
		cfg.AckTimeout = defaultAckTimeout
	}
	return &SerialTransceiver{
		cfg:     cfg,
		decoded: make(chan Command, decodedBufferSize),
		acks:    make(chan bool, 1),
	}
}

// Enable opens the serial port, pushes the decode tuning to the module
// and starts the read loop.
func (t *SerialTransceiver) Enable() error {
	port, err := serial.OpenPort(&serial.Config{Name: t.cfg.Port, Baud: t.cfg.Baud})
	if err != nil {
		return fmt.Errorf("open ir serial port %s: %w", t.cfg.Port, err)
	}
	t.mu.Lock()
	t.port = port
	t.mu.Unlock()

	if err := t.writeLine(fmt.Sprintf("TOL %d", t.cfg.TolerancePct)); err != nil {
		return fmt.Errorf("configure decode tolerance: %w", err)
	}
	if err := t.writeLine(fmt.Sprintf("MIN %d", t.cfg.MinUnknownBits)); err != nil {
		return fmt.Errorf("configure minimum unknown size: %w", err)
	}

	go t.readLoop(port)
	log.Printf("IR transceiver connected on %s at %d baud", t.cfg.Port, t.cfg.Baud)
	return nil
}

// Pause stops the module from decoding and drops anything already
// buffered so a later Resume starts clean.
func (t *SerialTransceiver) Pause() {
	t.mu.Lock()
	t.paused = true
	t.mu.Unlock()
	if err := t.writeLine("PAUSE"); err != nil {
		log.Printf("Failed to pause IR module: %v", err)
	}
	for {
		select {
		case <-t.decoded:
		default:
			return
		}
	}
}

// Resume re-enables decoding on the module.
func (t *SerialTransceiver) Resume() {
	t.mu.Lock()
	t.paused = false
	t.mu.Unlock()
	if err := t.writeLine("RESUME"); err != nil {
		log.Printf("Failed to resume IR module: %v", err)
	}
}

// PollDecoded returns the next decoded command if one is waiting.
func (t *SerialTransceiver) PollDecoded() (Command, bool) {
	select {
	case cmd := <-t.decoded:
		return cmd, true
	default:
		return Command{}, false
	}
}

// Send transmits one command and blocks until the module acknowledges
// it or the acknowledgement times out.
func (t *SerialTransceiver) Send(cmd Command, repeats int) bool {
	if err := t.writeLine(formatSendLine(cmd, repeats)); err != nil {
		log.Printf("Failed to write transmit frame: %v", err)
		return false
	}
	select {
	case ok := <-t.acks:
		return ok
	case <-time.After(t.cfg.AckTimeout):
		log.Printf("Timed out waiting for transmit acknowledgement")
		return false
	}
}

// Close closes the serial port, stopping the read loop.
func (t *SerialTransceiver) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	return err
}

func (t *SerialTransceiver) readLoop(port io.Reader) {
	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "RX "):
			if t.isPaused() {
				continue
			}
			cmd, err := parseDecodedLine(line)
			if err != nil {
				log.Printf("Dropping frame: %v", err)
				continue
			}
			select {
			case t.decoded <- cmd:
			default:
				// consumer is behind; dropping is safer than blocking the reader
			}
		case line == "OK":
			select {
			case t.acks <- true:
			default:
			}
		case line == "ERR":
			select {
			case t.acks <- false:
			default:
			}
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("IR serial read loop stopped: %v", err)
	}
}

func (t *SerialTransceiver) isPaused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

func (t *SerialTransceiver) writeLine(line string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.port == nil {
		return errors.New("ir serial port not open")
	}
	_, err := t.port.Write([]byte(line + "\n"))
	return err
}
