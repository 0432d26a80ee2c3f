// Package indicator drives the tri-color status LED.
package indicator

import (
	"fmt"
	"time"

	"github.com/bbernstein/irmacro-go/internal/services/clock"
	"github.com/bbernstein/irmacro-go/internal/services/gpio"
)

// Config holds the LED pin assignment and flash timing.
type Config struct {
	RedPin        gpio.Pin
	GreenPin      gpio.Pin
	BluePin       gpio.Pin
	FlashDuration time.Duration
}

// Indicator owns the tri-color LED. Each mode has a steady color;
// flashes block the caller through the injected clock and then restore
// the steady color.
type Indicator struct {
	io     gpio.IO
	clock  clock.Clock
	cfg    Config
	steady [3]bool
}

// New configures the LED pins as outputs and starts with the LED off.
func New(io gpio.IO, clk clock.Clock, cfg Config) (*Indicator, error) {
	for _, pin := range []gpio.Pin{cfg.RedPin, cfg.GreenPin, cfg.BluePin} {
		if err := io.ConfigureOutput(pin); err != nil {
			return nil, fmt.Errorf("configure led pin %d: %w", pin, err)
		}
	}
	ind := &Indicator{io: io, clock: clk, cfg: cfg}
	ind.set(false, false, false)
	return ind, nil
}

// SetRecordReady shows steady blue: record mode, waiting for a button.
func (i *Indicator) SetRecordReady() { i.hold(false, false, true) }

// SetRecording shows steady red while a macro is being captured.
func (i *Indicator) SetRecording() { i.hold(true, false, false) }

// SetPlayback shows steady green in playback mode.
func (i *Indicator) SetPlayback() { i.hold(false, true, false) }

// Idle turns the LED off.
func (i *Indicator) Idle() { i.hold(false, false, false) }

// PlaybackActive lights every channel while a macro is transmitting and
// restores the mode color when the run finishes.
func (i *Indicator) PlaybackActive(on bool) {
	if on {
		i.set(true, true, true)
		return
	}
	i.restore()
}

// FlashCaptured acknowledges an accepted command with a green flash.
func (i *Indicator) FlashCaptured() { i.flash(false, true, false) }

// FlashRejected signals a rejected sample with a red flash.
func (i *Indicator) FlashRejected() { i.flash(true, false, false) }

// FlashSendFailed signals a failed transmission with a double red blink.
func (i *Indicator) FlashSendFailed() {
	i.set(true, false, false)
	i.clock.Sleep(i.cfg.FlashDuration)
	i.set(false, false, false)
	i.clock.Sleep(i.cfg.FlashDuration)
	i.flash(true, false, false)
}

func (i *Indicator) hold(r, g, b bool) {
	i.steady = [3]bool{r, g, b}
	i.set(r, g, b)
}

func (i *Indicator) flash(r, g, b bool) {
	i.set(r, g, b)
	i.clock.Sleep(i.cfg.FlashDuration)
	i.restore()
}

func (i *Indicator) restore() { i.set(i.steady[0], i.steady[1], i.steady[2]) }

func (i *Indicator) set(r, g, b bool) {
	_ = i.io.Write(i.cfg.RedPin, r)
	_ = i.io.Write(i.cfg.GreenPin, g)
	_ = i.io.Write(i.cfg.BluePin, b)
}
