package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DebugLogger logs keystrokes, drags, and relocation outcomes to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "siganpyo-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{file: f, enabled: true}
	debugLog.log("DEBUG_START", map[string]any{
		"log_file": DebugLogPath,
		"time":     time.Now().Format(time.RFC3339),
	})
	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key": msg.String(),
	})
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("MODE_CHANGE", map[string]any{
		"from":   modeString(from),
		"to":     modeString(to),
		"reason": reason,
	})
}

// LogDrag logs the clamped translation of the active move session.
func LogDrag(dx, dy int, reason string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("DRAG", map[string]any{
		"dx":     dx,
		"dy":     dy,
		"reason": reason,
	})
}

// LogRelocate logs a commit attempt and whether it was accepted.
func LogRelocate(tableID, entryID string, dx, dy int, ok bool) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("RELOCATE", map[string]any{
		"table": tableID,
		"entry": entryID,
		"dx":    dx,
		"dy":    dy,
		"ok":    ok,
	})
}

// LogPlace logs a lecture placement.
func LogPlace(tableID, lectureID string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("PLACE", map[string]any{
		"table":   tableID,
		"lecture": lectureID,
	})
}

// modeString returns a string representation of a Mode.
func modeString(m Mode) string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeMove:
		return "Move"
	case ModeSearch:
		return "Search"
	case ModeConfirm:
		return "Confirm"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}
