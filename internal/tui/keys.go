package tui

import (
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/minjae-ko/siganpyo/internal/lecture"
	"github.com/minjae-ko/siganpyo/internal/timetable"
	"github.com/minjae-ko/siganpyo/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeSearch:
		return m.handleSearchKeys(msg)
	case ModeMove:
		return m.handleMoveKeys(msg)
	case ModeConfirm:
		return m.handleConfirmKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		if m.cursor.Day > 0 {
			m.cursor.Day--
		}
	case "l", "right":
		if m.cursor.Day < m.grid.NumDays()-1 {
			m.cursor.Day++
		}
	case "k", "up":
		if m.cursor.Period > 1 {
			m.cursor.Period--
		}
	case "j", "down":
		if m.cursor.Period < m.grid.NumSlots {
			m.cursor.Period++
		}

	// Table management
	case "tab":
		m.active = (m.active + 1) % len(m.order)
	case "shift+tab":
		m.active = (m.active + len(m.order) - 1) % len(m.order)
	case "n":
		return m.handleNewTable()
	case "d":
		return m.handleDuplicateTable()
	case "D":
		return m.handleRemoveTable()

	// Entry operations
	case "enter":
		return m.handleStartMove()
	case "x":
		return m.handleRemoveAt()

	// Search
	case "/":
		m.mode = ModeSearch
		m.search.open(lecture.Filter{})
		m.search.apply(m.lectures, m.parse)
		return m, textinput.Blink
	case "s":
		// Search constrained to the cursor's slot
		m.mode = ModeSearch
		m.search.open(lecture.Filter{
			Day:    m.grid.Days[m.cursor.Day],
			Period: m.cursor.Period,
		})
		m.search.apply(m.lectures, m.parse)
		return m, textinput.Blink

	case "y":
		return m.handleYankTable()

	case "r":
		m.catalog.Invalidate(m.cfg.Catalog.Resource)
		m.loading = true
		m.setStatus("Refreshing catalog...")
		return m, commands.LoadCatalog(m.catalog, m.cfg.Catalog.Resource)
	}

	return m, nil
}

// handleNewTable appends a fresh empty table and switches to it.
func (m Model) handleNewTable() (tea.Model, tea.Cmd) {
	id := uuid.NewString()
	m.tables = m.tables.Update(id, func(entries []timetable.Entry) []timetable.Entry {
		return entries
	})
	m.order = append(m.order, id)
	m.names[id] = tableName(m.nextName)
	m.nextName++
	m.active = len(m.order) - 1
	m.setStatus("Created %s", m.names[id])
	return m, nil
}

// handleDuplicateTable copies the active table and switches to the copy.
func (m Model) handleDuplicateTable() (tea.Model, tea.Cmd) {
	updated, id := m.tables.Duplicate(m.activeTableID())
	if id == "" {
		return m, nil
	}
	m.tables = updated
	m.order = append(m.order, id)
	m.names[id] = tableName(m.nextName)
	m.nextName++
	m.active = len(m.order) - 1
	m.setStatus("Duplicated into %s", m.names[id])
	return m, nil
}

// handleRemoveTable asks for confirmation before dropping a table.
// The last remaining table cannot be removed; the builder always shows
// at least one.
func (m Model) handleRemoveTable() (tea.Model, tea.Cmd) {
	if len(m.order) == 1 {
		m.setStatus("Cannot remove the last table")
		return m, nil
	}
	id := m.activeTableID()
	m.mode = ModeConfirm
	m.confirmTable = id
	m.confirmMessage = "Remove " + m.names[id] + "?"
	return m, nil
}

// handleConfirmKeys handles keys in the confirm dialog.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.mode = ModeNormal
		m.confirmTable = ""
		m.confirmMessage = ""
		return m, nil

	case "enter", "y":
		id := m.confirmTable
		m.tables = m.tables.Remove(id)
		for i, tid := range m.order {
			if tid == id {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
		delete(m.names, id)
		if m.active >= len(m.order) {
			m.active = len(m.order) - 1
		}
		m.mode = ModeNormal
		m.confirmTable = ""
		m.confirmMessage = ""
		m.setStatus("Table removed")
		return m, nil
	}
	return m, nil
}

// handleStartMove begins a keyboard relocation of the entry under the
// cursor.
func (m Model) handleStartMove() (tea.Model, tea.Cmd) {
	entry, ok := m.entryAtCursor()
	if !ok {
		return m, nil
	}

	box, ok := m.grid.Box(m.grid.DayIndex(entry.Day), entry.Periods)
	if !ok {
		return m, nil
	}

	m.mode = ModeMove
	m.move = &moveSession{
		tableID: m.activeTableID(),
		entryID: entry.ID,
		box:     box,
	}
	m.setStatus("Moving %s (hjkl to move, Enter to drop, Esc to cancel)", entryTitle(entry))
	LogModeChange(ModeNormal, ModeMove, "start_move")
	return m, nil
}

// handleMoveKeys handles keys during a keyboard relocation. Each step
// shifts the pending translation a whole cell and clamps it to the
// drawable area, so the preview can never leave the grid.
func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.move == nil {
		m.mode = ModeNormal
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.move = nil
		m.mode = ModeNormal
		m.setStatus("Move cancelled")
		LogModeChange(ModeMove, ModeNormal, "move_cancelled")
		return m, nil

	case "enter":
		return m.commitMove()

	case "h", "left":
		m.move.dx -= m.grid.CellWidth
	case "l", "right":
		m.move.dx += m.grid.CellWidth
	case "k", "up":
		m.move.dy -= m.grid.CellHeight
	case "j", "down":
		m.move.dy += m.grid.CellHeight
	default:
		return m, nil
	}

	m.move.dx, m.move.dy = m.grid.ClampDrag(m.move.box, m.move.dx, m.move.dy)
	LogDrag(m.move.dx, m.move.dy, "key_step")
	return m, nil
}

// commitMove validates and applies the pending relocation. A rejected
// move leaves the collection untouched and the block snaps back.
func (m Model) commitMove() (tea.Model, tea.Cmd) {
	session := m.move
	m.move = nil
	m.mode = ModeNormal

	updated, ok := m.grid.Relocate(m.tables, session.tableID, session.entryID, session.dx, session.dy)
	LogRelocate(session.tableID, session.entryID, session.dx, session.dy, ok)
	if !ok {
		m.setStatus("Cannot drop there")
		return m, nil
	}

	m.tables = updated
	if entry, found := m.tables.Find(session.tableID, session.entryID); found {
		m.cursor = Position{Day: m.grid.DayIndex(entry.Day), Period: entry.StartPeriod()}
		m.setStatus("Moved %s", entryTitle(entry))
	}
	return m, nil
}

// handleRemoveAt removes every entry covering the cursor's cell.
func (m Model) handleRemoveAt() (tea.Model, tea.Cmd) {
	day := m.grid.Days[m.cursor.Day]
	updated := m.tables.RemoveAt(m.activeTableID(), day, m.cursor.Period)
	if len(updated.Entries(m.activeTableID())) == len(m.tables.Entries(m.activeTableID())) {
		return m, nil
	}
	m.tables = updated
	m.setStatus("Removed")
	return m, nil
}

// handleYankTable copies a plain-text summary of the active table.
func (m Model) handleYankTable() (tea.Model, tea.Cmd) {
	id := m.activeTableID()
	lectures := m.tables.Lectures(id)
	if len(lectures) == 0 {
		m.setStatus("Nothing to copy")
		return m, nil
	}

	var b strings.Builder
	b.WriteString(m.names[id])
	b.WriteString("\n")
	for _, lec := range lectures {
		b.WriteString(lec.Title)
		if lec.Schedule != "" {
			b.WriteString("  ")
			b.WriteString(strings.ReplaceAll(lec.Schedule, "<p>", ", "))
		}
		b.WriteString("\n")
	}

	if err := clipboard.WriteAll(b.String()); err != nil {
		m.setStatus("Copy failed: %v", err)
		return m, nil
	}
	m.setStatus("Copied %d lectures", len(lectures))
	return m, nil
}

func tableName(n int) string {
	return "시간표 " + strconv.Itoa(n)
}

// entryTitle returns a short label for an entry.
func entryTitle(e timetable.Entry) string {
	if e.Lecture != nil && e.Lecture.Title != "" {
		return e.Lecture.Title
	}
	return e.ID
}
