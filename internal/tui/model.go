// Package tui provides the interactive timetable builder.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/minjae-ko/siganpyo/internal/catalog"
	"github.com/minjae-ko/siganpyo/internal/config"
	"github.com/minjae-ko/siganpyo/internal/grid"
	"github.com/minjae-ko/siganpyo/internal/lecture"
	"github.com/minjae-ko/siganpyo/internal/timetable"
	"github.com/minjae-ko/siganpyo/internal/tui/commands"
	"github.com/minjae-ko/siganpyo/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeMove         // An entry is being relocated (keyboard or mouse)
	ModeSearch       // The lecture search dialog is open
	ModeConfirm      // A destructive action awaits confirmation
)

// Position is the cursor position on the grid.
type Position struct {
	Day    int // 0-based day column
	Period int // 1-based period row
}

// moveSession tracks an in-flight relocation. The pending translation is
// kept in terminal cells, so keyboard moves and mouse drags feed the
// same snapping and validation.
type moveSession struct {
	tableID string
	entryID string
	box     grid.Rect
	dx, dy  int

	// Mouse drags anchor on the press position; keyboard moves leave
	// these zero and step dx/dy a whole cell at a time.
	dragging       bool
	startX, startY int
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	cfg      *config.Config
	catalog  *catalog.Cache
	snapshot *catalog.SnapshotStore // nil when snapshots are disabled
	log      *zap.Logger

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Grid geometry shared with the relocation engine
	grid grid.Config

	// Schedule parsing is memoized per session
	parse *lecture.ParseCache

	// Timetables
	tables   timetable.Collection
	order    []string          // table ids in creation order
	names    map[string]string // display names
	nextName int               // next table number
	active   int               // index into order

	// Catalog
	lectures []*lecture.Lecture
	loading  bool
	offline  bool // catalog came from the disk snapshot

	// State
	mode   Mode
	cursor Position
	move   *moveSession
	search searchState

	// Confirm dialog
	confirmMessage string
	confirmTable   string // table id pending removal

	overlay OverlayModel

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusTime time.Time

	err error
}

// New creates a new TUI model. The snapshot store may be nil.
func New(cfg *config.Config, cache *catalog.Cache, snapshot *catalog.SnapshotStore, log *zap.Logger) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	tables, seedID := timetable.New()

	m := &Model{
		cfg:      cfg,
		catalog:  cache,
		snapshot: snapshot,
		log:      log,
		theme:    t,
		styles:   styles,
		grid:     grid.Default(),
		parse:    lecture.NewParseCache(),
		tables:   tables,
		order:    []string{seedID},
		names:    map[string]string{seedID: "시간표 1"},
		nextName: 2,
		cursor:   Position{Day: 0, Period: 1},
		mode:     ModeNormal,
		loading:  true,
		overlay:  NewOverlayModel(),
	}
	m.search = newSearchState(styles, cfg.Search.PageSize)

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadCatalog(m.catalog, m.cfg.Catalog.Resource)
}

// activeTableID returns the id of the currently displayed table.
func (m Model) activeTableID() string {
	if len(m.order) == 0 {
		return ""
	}
	return m.order[m.active]
}

// entryAtCursor returns the topmost entry under the cursor.
func (m Model) entryAtCursor() (timetable.Entry, bool) {
	day := m.grid.Days[m.cursor.Day]
	return m.tables.EntryAt(m.activeTableID(), day, m.cursor.Period)
}

// setStatus shows a temporary status message.
func (m *Model) setStatus(format string, args ...any) {
	m.statusMsg = fmt.Sprintf(format, args...)
	m.statusTime = time.Now().Add(4 * time.Second)
}

// Run starts the TUI.
func Run(cfg *config.Config, cache *catalog.Cache, snapshot *catalog.SnapshotStore, log *zap.Logger) error {
	return RunWithDebug(cfg, cache, snapshot, log, false)
}

// RunWithDebug starts the TUI with optional debug event logging.
func RunWithDebug(cfg *config.Config, cache *catalog.Cache, snapshot *catalog.SnapshotStore, log *zap.Logger, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(cfg, cache, snapshot, log)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
