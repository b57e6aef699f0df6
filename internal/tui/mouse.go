package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// The grid is drawn directly under the tab line, so mouse coordinates
// shift by one row before hit testing.
const gridTop = 1

// handleMouse handles press/drag/release. A press on a block starts a
// drag; motion clamps the translation to the drawable area; release
// snaps to whole cells and commits or rejects the relocation.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := msg.X, msg.Y-gridTop

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.mode != ModeNormal {
			return m, nil
		}
		return m.startDrag(x, y)

	case tea.MouseActionMotion:
		if m.mode != ModeMove || m.move == nil || !m.move.dragging {
			return m, nil
		}
		m.move.dx, m.move.dy = m.grid.ClampDrag(m.move.box, x-m.move.startX, y-m.move.startY)
		LogDrag(m.move.dx, m.move.dy, "drag_motion")
		return m, nil

	case tea.MouseActionRelease:
		if m.mode != ModeMove || m.move == nil || !m.move.dragging {
			return m, nil
		}
		return m.commitMove()
	}

	return m, nil
}

// startDrag picks up the topmost block under the press position.
func (m Model) startDrag(x, y int) (tea.Model, tea.Cmd) {
	day, period, ok := m.grid.HitTest(x, y)
	if !ok {
		return m, nil
	}
	m.cursor = Position{Day: day, Period: period}

	entry, found := m.tables.EntryAt(m.activeTableID(), m.grid.Days[day], period)
	if !found {
		return m, nil
	}

	box, ok := m.grid.Box(m.grid.DayIndex(entry.Day), entry.Periods)
	if !ok {
		return m, nil
	}

	m.mode = ModeMove
	m.move = &moveSession{
		tableID:  m.activeTableID(),
		entryID:  entry.ID,
		box:      box,
		dragging: true,
		startX:   x,
		startY:   y,
	}
	LogModeChange(ModeNormal, ModeMove, "drag_start")
	return m, nil
}
