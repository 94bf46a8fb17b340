package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bobmcallan/ardex/internal/common"
)

func main() {
	// Resolve config path
	configPath := os.Getenv("ARDEX_CONFIG")
	if configPath == "" {
		if exe, err := os.Executable(); err == nil {
			configPath = filepath.Join(filepath.Dir(exe), "ardex.toml")
		}
	}

	common.LoadVersionFromFile()

	a, err := NewApp(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	common.PrintBanner(a.Config, a.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Interrupts close storage cleanly before exit.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		a.Logger.Info().Msg("Shutdown signal received")
		cancel()
		a.Close()
		common.PrintShutdownBanner(a.Logger)
		os.Exit(0)
	}()

	if err := run(ctx, a); err != nil {
		a.Logger.Error().Err(err).Msg("Session ended with error")
	}

	a.Close()
	common.PrintShutdownBanner(a.Logger)
}
