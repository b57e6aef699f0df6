// Package ui provides the command line interface for siganpyo.
package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/minjae-ko/siganpyo/internal/catalog"
	"github.com/minjae-ko/siganpyo/internal/config"
	"github.com/minjae-ko/siganpyo/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config   *config.Config
	log      *zap.Logger
	catalog  *catalog.Cache
	snapshot *catalog.SnapshotStore
	root     *cobra.Command
	debug    bool // Enable debug event logging
}

// NewApp creates a new CLI application with the given config and logger.
func NewApp(cfg *config.Config, log *zap.Logger) *App {
	a := &App{config: cfg, log: log}
	a.catalog = catalog.NewCache(catalog.NewClient(cfg.Catalog.URL))

	if cfg.Catalog.Snapshot {
		if err := os.MkdirAll(filepath.Dir(cfg.Catalog.SnapshotPath), 0o755); err != nil {
			log.Warn("creating snapshot directory", zap.Error(err))
		} else if store, err := catalog.OpenSnapshot(cfg.Catalog.SnapshotPath); err != nil {
			// A broken snapshot store degrades to online-only operation.
			log.Warn("opening snapshot store", zap.Error(err))
		} else {
			a.snapshot = store
		}
	}

	a.root = &cobra.Command{
		Use:   "siganpyo",
		Short: "An interactive timetable builder for the terminal",
		Long: `Siganpyo is an interactive university timetable builder.

It fetches the lecture catalog for a term, lets you search and place
lectures onto candidate timetables, and rearranges placed blocks by
dragging them across the week grid.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.config, a.catalog, a.snapshot, a.log, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug event logging (logs to "+tui.DebugLogPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.catalogCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("siganpyo %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the snapshot store, if one was opened.
func (a *App) Close() error {
	if a.snapshot != nil {
		return a.snapshot.Close()
	}
	return nil
}
