package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minjae-ko/siganpyo/internal/config"
	"github.com/minjae-ko/siganpyo/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  siganpyo config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.Catalog.URL = promptValue(reader, "Catalog URL", cfg.Catalog.URL)
	cfg.Catalog.Resource = promptValue(reader, "Catalog resource (term)", cfg.Catalog.Resource)
	cfg.Catalog.SnapshotPath = promptValue(reader, "Snapshot path", cfg.Catalog.SnapshotPath)
	cfg.Search.DebounceMillis = promptInt(reader, "Search debounce (ms)", cfg.Search.DebounceMillis)
	cfg.Search.PageSize = promptInt(reader, "Search page size", cfg.Search.PageSize)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)
	cfg.Log.Level = promptValue(reader, "Log level", cfg.Log.Level)
	cfg.Log.Path = promptValue(reader, "Log path", cfg.Log.Path)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[catalog]")
	fmt.Printf("  url           = %s\n", cfg.Catalog.URL)
	fmt.Printf("  resource      = %s\n", cfg.Catalog.Resource)
	fmt.Printf("  snapshot      = %t\n", cfg.Catalog.Snapshot)
	fmt.Printf("  snapshot_path = %s\n", cfg.Catalog.SnapshotPath)
	fmt.Println("\n[search]")
	fmt.Printf("  debounce_millis = %d\n", cfg.Search.DebounceMillis)
	fmt.Printf("  page_size       = %d\n", cfg.Search.PageSize)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme         = %s\n", cfg.UI.Theme)
	fmt.Println("\n[log]")
	fmt.Printf("  level         = %s\n", cfg.Log.Level)
	fmt.Printf("  path          = %s\n", cfg.Log.Path)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Printf("  Not a number: %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
