// Package logger initializes the process logger.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/minjae-ko/siganpyo/internal/config"
)

// New builds a zap logger from the log configuration. Output goes to the
// configured file because the TUI owns the terminal; a failed fetch or a
// skipped snapshot must not corrupt the alt screen.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{cfg.Path}
	zapCfg.ErrorOutputPaths = []string{cfg.Path}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	return log, nil
}

// Nop returns a logger that discards everything. Used in tests and as a
// fallback when log initialization fails: losing log lines is better
// than refusing to start an interactive tool.
func Nop() *zap.Logger {
	return zap.NewNop()
}
