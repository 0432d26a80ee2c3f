package indicator

import (
	"testing"
	"time"

	"github.com/bbernstein/irmacro-go/internal/services/clock"
	"github.com/bbernstein/irmacro-go/internal/services/gpio"
)

func setup(t *testing.T) (*gpio.Memory, *Indicator) {
	t.Helper()
	mem := gpio.NewMemory()
	ind, err := New(mem, clock.NewSimulated(), Config{
		RedPin:        11,
		GreenPin:      12,
		BluePin:       13,
		FlashDuration: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return mem, ind
}

func levels(mem *gpio.Memory) [3]bool {
	return [3]bool{mem.Level(11), mem.Level(12), mem.Level(13)}
}

func TestModeColors(t *testing.T) {
	mem, ind := setup(t)

	if got := levels(mem); got != [3]bool{false, false, false} {
		t.Errorf("initial levels = %v, want all off", got)
	}

	ind.SetRecordReady()
	if got := levels(mem); got != [3]bool{false, false, true} {
		t.Errorf("record-ready levels = %v, want blue", got)
	}

	ind.SetRecording()
	if got := levels(mem); got != [3]bool{true, false, false} {
		t.Errorf("recording levels = %v, want red", got)
	}

	ind.SetPlayback()
	if got := levels(mem); got != [3]bool{false, true, false} {
		t.Errorf("playback levels = %v, want green", got)
	}

	ind.Idle()
	if got := levels(mem); got != [3]bool{false, false, false} {
		t.Errorf("idle levels = %v, want all off", got)
	}
}

func TestFlashRestoresSteadyColor(t *testing.T) {
	mem, ind := setup(t)

	ind.SetRecording()
	ind.FlashCaptured()
	if got := levels(mem); got != [3]bool{true, false, false} {
		t.Errorf("levels after flash = %v, want the steady recording red", got)
	}

	ind.FlashRejected()
	if got := levels(mem); got != [3]bool{true, false, false} {
		t.Errorf("levels after rejected flash = %v, want the steady recording red", got)
	}
}

func TestPlaybackActivityRestoresMode(t *testing.T) {
	mem, ind := setup(t)

	ind.SetPlayback()
	ind.PlaybackActive(true)
	if got := levels(mem); got != [3]bool{true, true, true} {
		t.Errorf("active levels = %v, want all on", got)
	}

	ind.FlashSendFailed()
	ind.PlaybackActive(false)
	if got := levels(mem); got != [3]bool{false, true, false} {
		t.Errorf("levels after playback = %v, want green", got)
	}
}
