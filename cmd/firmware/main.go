// Package main is the entry point for the IR macro firmware.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bbernstein/irmacro-go/internal/config"
	"github.com/bbernstein/irmacro-go/internal/database"
	"github.com/bbernstein/irmacro-go/internal/database/models"
	"github.com/bbernstein/irmacro-go/internal/database/repositories"
	"github.com/bbernstein/irmacro-go/internal/services/clock"
	"github.com/bbernstein/irmacro-go/internal/services/controller"
	"github.com/bbernstein/irmacro-go/internal/services/gpio"
	"github.com/bbernstein/irmacro-go/internal/services/indicator"
	"github.com/bbernstein/irmacro-go/internal/services/ir"
	"github.com/bbernstein/irmacro-go/internal/services/macrostore"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	printBanner(cfg)

	db, err := database.Connect(database.Config{
		URL:         cfg.DatabaseURL,
		MaxIdleConn: 2,
		MaxOpenConn: 4,
		Debug:       cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close() }()

	if err := db.AutoMigrate(&models.Entry{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	entries := repositories.NewEntryRepository(db)
	store := macrostore.NewStore(entries, len(cfg.ButtonPins))

	bank, err := store.LoadBank(context.Background())
	if err != nil {
		log.Fatalf("Failed to load macro bank: %v", err)
	}
	log.Printf("Macro bank loaded: %d of %d slots in use", usedSlots(bank), bank.NumSlots())

	clk := clock.System{}
	pins := gpio.NewMemory() // swap in a board driver for real hardware

	receiver, transmitter, closer := buildTransceiver(cfg)
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	ind, err := indicator.New(pins, clk, indicator.Config{
		RedPin:        gpio.Pin(cfg.LEDRedPin),
		GreenPin:      gpio.Pin(cfg.LEDGreenPin),
		BluePin:       gpio.Pin(cfg.LEDBluePin),
		FlashDuration: cfg.FlashDuration,
	})
	if err != nil {
		log.Fatalf("Failed to configure status indicator: %v", err)
	}

	ctrl, err := controller.New(controller.Config{
		ButtonPins:    buttonPins(cfg),
		ModeSwitchPin: gpio.Pin(cfg.ModeSwitchPin),
		Debounce:      cfg.DebounceDelay,
		RecordPause:   cfg.RecordPause,
		PlaybackDelay: cfg.PlaybackDelay,
		TickInterval:  cfg.TickInterval,
		SendRepeats:   cfg.IRSendRepeats,
	}, controller.Deps{
		Clock:       clk,
		IO:          pins,
		Receiver:    receiver,
		Transmitter: transmitter,
		Indicator:   ind,
		Store:       store,
		Bank:        bank,
	})
	if err != nil {
		log.Fatalf("Failed to start controller: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down...")
		cancel()
	}()

	if err := ctrl.Run(ctx); err != nil {
		log.Fatalf("Control loop error: %v", err)
	}

	ind.Idle()
	log.Println("Controller stopped")
}

// buildTransceiver picks the serial-attached transceiver module when a
// port is configured, otherwise the in-memory simulator.
func buildTransceiver(cfg *config.Config) (ir.Receiver, ir.Transmitter, io.Closer) {
	if cfg.IRSerialPort == "" {
		log.Println("IR_SERIAL_PORT not set, using simulated transceiver")
		sim := ir.NewSimulator()
		return sim, sim, nil
	}
	trx := ir.NewSerialTransceiver(ir.SerialConfig{
		Port:           cfg.IRSerialPort,
		Baud:           cfg.IRBaudRate,
		TolerancePct:   cfg.IRDecodeTolerancePct,
		MinUnknownBits: cfg.IRMinUnknownBits,
	})
	return trx, trx, trx
}

func buttonPins(cfg *config.Config) []gpio.Pin {
	pins := make([]gpio.Pin, len(cfg.ButtonPins))
	for i, pin := range cfg.ButtonPins {
		pins[i] = gpio.Pin(pin)
	}
	return pins
}

func usedSlots(bank *macrostore.Bank) int {
	used := 0
	for slot := 0; slot < bank.NumSlots(); slot++ {
		if len(bank.Macro(slot)) > 0 {
			used++
		}
	}
	return used
}

// printBanner prints the startup banner.
func printBanner(cfg *config.Config) {
	fmt.Println("============================================")
	fmt.Println("  IR Macro Firmware")
	fmt.Printf("  Version: %s\n", Version)
	fmt.Printf("  Build:   %s\n", BuildTime)
	fmt.Printf("  Commit:  %s\n", GitCommit)
	fmt.Println("============================================")
	fmt.Printf("  Environment: %s\n", cfg.Env)
	fmt.Printf("  Database:    %s\n", cfg.DatabaseURL)
	fmt.Printf("  Buttons:     %v\n", cfg.ButtonPins)
	fmt.Printf("  IR port:     %s\n", irPortName(cfg))
	fmt.Println("============================================")
}

func irPortName(cfg *config.Config) string {
	if cfg.IRSerialPort == "" {
		return "(simulated)"
	}
	return cfg.IRSerialPort
}
