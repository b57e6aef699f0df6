package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/minjae-ko/siganpyo/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commands.CatalogLoadedMsg:
		m.lectures = msg.Lectures
		m.loading = false
		m.offline = false
		if m.mode == ModeSearch {
			m.search.apply(m.lectures, m.parse)
		}
		m.setStatus("Loaded %d lectures", len(msg.Lectures))
		if m.snapshot != nil {
			return m, commands.SaveSnapshot(m.snapshot, msg.Resource, msg.Lectures)
		}
		return m, nil

	case commands.CatalogErrMsg:
		m.loading = false
		m.log.Warn("catalog fetch failed",
			zap.String("resource", msg.Resource),
			zap.Error(msg.Err))
		if m.snapshot != nil {
			m.setStatus("Fetch failed, loading snapshot...")
			return m, commands.LoadSnapshot(m.snapshot, msg.Resource)
		}
		m.err = msg.Err
		m.setStatus("Catalog fetch failed: %v", msg.Err)
		return m, nil

	case commands.SnapshotLoadedMsg:
		if len(msg.Lectures) == 0 {
			m.setStatus("No catalog available (offline, no snapshot)")
			return m, nil
		}
		m.lectures = msg.Lectures
		m.offline = true
		// Prime the session cache so a later search does not refetch.
		m.catalog.Put(msg.Resource, msg.Lectures)
		if m.mode == ModeSearch {
			m.search.apply(m.lectures, m.parse)
		}
		m.setStatus("Offline catalog from %s", msg.FetchedAt.Format("2006-01-02 15:04"))
		return m, nil

	case commands.SnapshotSavedMsg:
		if msg.Err != nil {
			m.log.Warn("snapshot save failed",
				zap.String("resource", msg.Resource),
				zap.Error(msg.Err))
		}
		return m, nil

	case commands.FilterDebounceMsg:
		// Only the newest keystroke's timer applies the filter.
		if m.mode == ModeSearch && msg.Seq == m.search.seq {
			m.search.apply(m.lectures, m.parse)
		}
		return m, nil

	case commands.StatusMsg:
		m.setStatus("%s", msg.Text)
		return m, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		m.setStatus("Error: %v", msg.Err)
		return m, nil
	}

	return m, nil
}
