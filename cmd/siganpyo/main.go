package main

import (
	"fmt"
	"os"

	"github.com/minjae-ko/siganpyo/internal/config"
	"github.com/minjae-ko/siganpyo/internal/logger"
	"github.com/minjae-ko/siganpyo/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The TUI owns the terminal, so the process log goes to a file.
	log, err := logger.New(cfg.Log)
	if err != nil {
		log = logger.Nop()
	}
	defer func() { _ = log.Sync() }()

	app := ui.NewApp(cfg, log)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
