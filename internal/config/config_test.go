package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Env != "development" {
		t.Errorf("Env = %s, want development", cfg.Env)
	}
	if cfg.DatabaseURL != "file:./macros.db" {
		t.Errorf("DatabaseURL = %s, want file:./macros.db", cfg.DatabaseURL)
	}
	if len(cfg.ButtonPins) != 8 {
		t.Errorf("ButtonPins has %d entries, want 8", len(cfg.ButtonPins))
	}
	if cfg.ModeSwitchPin != 10 {
		t.Errorf("ModeSwitchPin = %d, want 10", cfg.ModeSwitchPin)
	}
	if cfg.DebounceDelay != 50*time.Millisecond {
		t.Errorf("DebounceDelay = %v, want 50ms", cfg.DebounceDelay)
	}
	if cfg.RecordPause != 500*time.Millisecond {
		t.Errorf("RecordPause = %v, want 500ms", cfg.RecordPause)
	}
	if cfg.IRSerialPort != "" {
		t.Errorf("IRSerialPort = %q, want empty", cfg.IRSerialPort)
	}
	if cfg.IRBaudRate != 115200 {
		t.Errorf("IRBaudRate = %d, want 115200", cfg.IRBaudRate)
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment should be true by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("BUTTON_PINS", "20, 21,22")
	t.Setenv("DEBOUNCE_MS", "30")
	t.Setenv("IR_SERIAL_PORT", "/dev/ttyUSB0")

	cfg := Load()

	if !cfg.IsProduction() {
		t.Error("IsProduction should be true")
	}
	want := []int{20, 21, 22}
	if len(cfg.ButtonPins) != len(want) {
		t.Fatalf("ButtonPins = %v, want %v", cfg.ButtonPins, want)
	}
	for i, pin := range want {
		if cfg.ButtonPins[i] != pin {
			t.Errorf("ButtonPins[%d] = %d, want %d", i, cfg.ButtonPins[i], pin)
		}
	}
	if cfg.DebounceDelay != 30*time.Millisecond {
		t.Errorf("DebounceDelay = %v, want 30ms", cfg.DebounceDelay)
	}
	if cfg.IRSerialPort != "/dev/ttyUSB0" {
		t.Errorf("IRSerialPort = %s, want /dev/ttyUSB0", cfg.IRSerialPort)
	}
}

func TestLoadMalformedPinListFallsBack(t *testing.T) {
	t.Setenv("BUTTON_PINS", "2,oops,4")

	cfg := Load()
	if len(cfg.ButtonPins) != 8 {
		t.Errorf("malformed BUTTON_PINS should fall back to the default, got %v", cfg.ButtonPins)
	}
}
