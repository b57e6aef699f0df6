package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// cellXY returns the screen position of a grid cell's top-left corner.
func cellXY(m Model, day, period int) (int, int) {
	x := m.grid.HeaderWidth + day*m.grid.CellWidth
	y := gridTop + m.grid.HeaderHeight + (period-1)*m.grid.CellHeight
	return x, y
}

func mouse(t *testing.T, m Model, msg tea.MouseMsg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return next
}

func TestMouseDrag(t *testing.T) {
	t.Run("press, drag, release relocates the block", func(t *testing.T) {
		m := newTestModel()
		m.tables = m.tables.Place(m.activeTableID(), m.lectures[0]) // 월3~4

		x, y := cellXY(m, 0, 3)
		m = mouse(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		if m.mode != ModeMove || m.move == nil || !m.move.dragging {
			t.Fatal("press on a block should start a drag")
		}

		// Drag one column right and one row down.
		m = mouse(t, m, tea.MouseMsg{
			X: x + m.grid.CellWidth, Y: y + m.grid.CellHeight,
			Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft,
		})
		if m.move.dx != m.grid.CellWidth || m.move.dy != m.grid.CellHeight {
			t.Fatalf("clamped delta = (%d,%d)", m.move.dx, m.move.dy)
		}

		m = mouse(t, m, tea.MouseMsg{
			X: x + m.grid.CellWidth, Y: y + m.grid.CellHeight,
			Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft,
		})
		if m.mode != ModeNormal {
			t.Errorf("mode = %v after release", m.mode)
		}
		if _, ok := m.tables.EntryAt(m.activeTableID(), "화", 4); !ok {
			t.Error("block should land at 화4")
		}
	})

	t.Run("sub-cell wobble snaps back to the origin", func(t *testing.T) {
		m := newTestModel()
		m.tables = m.tables.Place(m.activeTableID(), m.lectures[0]) // 월3~4

		x, y := cellXY(m, 0, 3)
		m = mouse(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		// Less than half a cell in both axes rounds to zero.
		m = mouse(t, m, tea.MouseMsg{
			X: x + m.grid.CellWidth/2 - 1, Y: y,
			Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft,
		})
		if m.move.dx != 0 || m.move.dy != 0 {
			t.Fatalf("delta = (%d,%d), want (0,0)", m.move.dx, m.move.dy)
		}
		m = mouse(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
		if _, ok := m.tables.EntryAt(m.activeTableID(), "월", 3); !ok {
			t.Error("block should stay at 월3")
		}
	})

	t.Run("press on an empty cell only moves the cursor", func(t *testing.T) {
		m := newTestModel()
		x, y := cellXY(m, 2, 5)
		m = mouse(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		if m.mode != ModeNormal {
			t.Errorf("mode = %v", m.mode)
		}
		if m.cursor != (Position{Day: 2, Period: 5}) {
			t.Errorf("cursor = %+v", m.cursor)
		}
	})

	t.Run("press on the header is ignored", func(t *testing.T) {
		m := newTestModel()
		before := m.cursor
		m = mouse(t, m, tea.MouseMsg{X: 2, Y: gridTop, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		if m.cursor != before || m.mode != ModeNormal {
			t.Error("header press should be a no-op")
		}
	})
}
