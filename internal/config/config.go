// Package config provides configuration management for the firmware.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the firmware.
type Config struct {
	// Environment
	Env string

	// Database configuration
	DatabaseURL string

	// Input pins: one per macro button plus the record/playback switch
	ButtonPins    []int
	ModeSwitchPin int

	// Status LED pins
	LEDRedPin   int
	LEDGreenPin int
	LEDBluePin  int

	// Timing
	DebounceDelay time.Duration // window after an accepted edge during which changes are ignored
	RecordPause   time.Duration // minimum gap between accepted commands while recording
	PlaybackDelay time.Duration // gap between transmitted commands during playback
	FlashDuration time.Duration // length of one indicator flash
	TickInterval  time.Duration // control loop period

	// Infrared transceiver module
	IRSerialPort         string // empty selects the simulated transceiver
	IRBaudRate           int
	IRSendRepeats        int
	IRDecodeTolerancePct int
	IRMinUnknownBits     int
}

// Load loads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env: getEnv("ENV", "development"),

		DatabaseURL: getEnv("DATABASE_URL", "file:./macros.db"),

		ButtonPins:    getEnvInts("BUTTON_PINS", []int{2, 3, 4, 5, 6, 7, 8, 9}),
		ModeSwitchPin: getEnvInt("MODE_SWITCH_PIN", 10),

		LEDRedPin:   getEnvInt("LED_RED_PIN", 11),
		LEDGreenPin: getEnvInt("LED_GREEN_PIN", 12),
		LEDBluePin:  getEnvInt("LED_BLUE_PIN", 13),

		DebounceDelay: getEnvMillis("DEBOUNCE_MS", 50),
		RecordPause:   getEnvMillis("RECORD_PAUSE_MS", 500),
		PlaybackDelay: getEnvMillis("PLAYBACK_DELAY_MS", 250),
		FlashDuration: getEnvMillis("FLASH_MS", 120),
		TickInterval:  getEnvMillis("TICK_MS", 5),

		IRSerialPort:         getEnv("IR_SERIAL_PORT", ""),
		IRBaudRate:           getEnvInt("IR_BAUD_RATE", 115200),
		IRSendRepeats:        getEnvInt("IR_SEND_REPEATS", 0),
		IRDecodeTolerancePct: getEnvInt("IR_DECODE_TOLERANCE", 25),
		IRMinUnknownBits:     getEnvInt("IR_MIN_UNKNOWN_BITS", 12),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default value.
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvMillis returns an environment variable interpreted as milliseconds.
func getEnvMillis(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvInt(key, defaultValue)) * time.Millisecond
}

// getEnvInts returns a comma-separated integer list from an environment
// variable, or the default when unset or malformed.
func getEnvInts(key string, defaultValue []int) []int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	ints := make([]int, 0, len(parts))
	for _, part := range parts {
		intVal, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return defaultValue
		}
		ints = append(ints, intVal)
	}
	if len(ints) == 0 {
		return defaultValue
	}
	return ints
}
