package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/minjae-ko/siganpyo/internal/timetable"
)

// View renders the TUI.
func (m Model) View() string {
	base := m.renderBase()

	var modal string
	switch m.mode {
	case ModeSearch:
		modal = m.renderSearchModal()
	case ModeConfirm:
		modal = m.renderConfirmModal()
	default:
		return base
	}

	m.overlay.active = true
	m.overlay.SetBackground(m.styles.ModalBackdropColor)
	return m.overlay.Render(base, m.width, m.height, modal)
}

func (m Model) renderBase() string {
	lines := []string{m.renderTabs()}
	lines = append(lines, m.renderGrid()...)
	lines = append(lines, m.renderFooter()...)
	return strings.Join(lines, "\n")
}

// renderTabs renders the single tab line above the grid.
func (m Model) renderTabs() string {
	var parts []string
	for i, id := range m.order {
		style := m.styles.TabStyle
		if i == m.active {
			style = m.styles.TabActiveStyle
		}
		parts = append(parts, style.Render(m.names[id]))
	}
	line := strings.Join(parts, " ")

	switch {
	case m.loading:
		line += "  " + m.styles.HelpStyle.Render("불러오는 중...")
	case m.offline:
		line += "  " + m.styles.HelpStyle.Render("오프라인")
	}
	return line
}

// cellKey addresses one day/period cell of the grid.
type cellKey struct {
	day    int
	period int
}

// renderGrid renders the day header and every period row.
func (m Model) renderGrid() []string {
	owners := m.cellOwners()
	alt := m.alternateShades(owners)
	preview, previewEntry, previewStart := m.previewCells()

	lines := make([]string, 0, m.grid.Height())

	// Day header
	var header strings.Builder
	header.WriteString(m.styles.TimeColumnStyle.Width(m.grid.HeaderWidth).Render(""))
	for d, day := range m.grid.Days {
		style := m.styles.DayHeaderStyle
		if d == m.cursor.Day {
			style = m.styles.DayHeaderCursorStyle
		}
		header.WriteString(style.Width(m.grid.CellWidth).Render(day))
	}
	lines = append(lines, header.String())

	for period := 1; period <= m.grid.NumSlots; period++ {
		for line := 0; line < m.grid.CellHeight; line++ {
			var row strings.Builder

			label := ""
			if line == 0 {
				label = m.grid.SlotLabel(period)
			}
			row.WriteString(m.styles.TimeColumnStyle.Width(m.grid.HeaderWidth).Render(label))

			for d := range m.grid.Days {
				row.WriteString(m.renderCell(d, period, line, owners, alt, preview, previewEntry, previewStart))
			}
			lines = append(lines, row.String())
		}
	}

	return lines
}

// renderCell renders one terminal line of one grid cell.
func (m Model) renderCell(
	day, period, line int,
	owners map[cellKey]timetable.Entry,
	alt map[string]bool,
	preview map[cellKey]bool,
	previewEntry timetable.Entry,
	previewStart int,
) string {
	key := cellKey{day: day, period: period}
	width := m.grid.CellWidth

	if preview[key] {
		return m.styles.MovePreviewStyle.Width(width).Render(
			cellTruncate(blockText(previewEntry, period-previewStart, line), width))
	}

	if entry, ok := owners[key]; ok {
		style := m.entryStyle(entry, alt)
		return style.Width(width).Render(
			cellTruncate(blockText(entry, period-entry.StartPeriod(), line), width))
	}

	if m.mode == ModeNormal && day == m.cursor.Day && period == m.cursor.Period {
		return m.styles.CursorStyle.Width(width).Render("")
	}

	return m.styles.EmptyCellStyle.Width(width).Render("")
}

func (m Model) entryStyle(entry timetable.Entry, alt map[string]bool) lipgloss.Style {
	if m.move != nil && entry.ID == m.move.entryID {
		return m.styles.MoveSourceStyle
	}
	lectureID := ""
	if entry.Lecture != nil {
		lectureID = entry.Lecture.ID
	}
	if alt[entry.ID] {
		return m.styles.BlockAltStyle(lectureID)
	}
	return m.styles.BlockStyle(lectureID)
}

// blockText returns the content of a block cell. The first cell line of
// a block shows the title, the second its room.
func blockText(entry timetable.Entry, periodOffset, line int) string {
	if periodOffset != 0 {
		return ""
	}
	switch line {
	case 0:
		return entryTitle(entry)
	case 1:
		return entry.Room
	}
	return ""
}

func cellTruncate(s string, width int) string {
	if s == "" {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// cellOwners paints every entry of the active table into its cells.
// Later entries win, matching Collection.EntryAt.
func (m Model) cellOwners() map[cellKey]timetable.Entry {
	owners := make(map[cellKey]timetable.Entry)
	for _, entry := range m.tables.Entries(m.activeTableID()) {
		day := m.grid.DayIndex(entry.Day)
		if day < 0 {
			continue
		}
		for _, p := range entry.Periods {
			if p < 1 || p > m.grid.NumSlots {
				continue
			}
			owners[cellKey{day: day, period: p}] = entry
		}
	}
	return owners
}

// alternateShades marks entries that vertically touch another block of
// the same lecture, so the boundary between them stays visible.
func (m Model) alternateShades(owners map[cellKey]timetable.Entry) map[string]bool {
	alt := make(map[string]bool)
	for d := range m.grid.Days {
		var prev timetable.Entry
		havePrev := false
		for p := 1; p <= m.grid.NumSlots; p++ {
			entry, ok := owners[cellKey{day: d, period: p}]
			if !ok {
				havePrev = false
				continue
			}
			if havePrev && prev.ID != entry.ID &&
				prev.Lecture != nil && entry.Lecture != nil &&
				prev.Lecture.ID == entry.Lecture.ID && !alt[prev.ID] {
				alt[entry.ID] = true
			}
			prev = entry
			havePrev = true
		}
	}
	return alt
}

// previewCells computes the cells covered by the moving block at its
// current clamped translation.
func (m Model) previewCells() (map[cellKey]bool, timetable.Entry, int) {
	if m.move == nil {
		return nil, timetable.Entry{}, 0
	}
	entry, ok := m.tables.Find(m.move.tableID, m.move.entryID)
	if !ok {
		return nil, timetable.Entry{}, 0
	}

	dayDelta, slotDelta := m.grid.SnapDelta(m.move.dx, m.move.dy)
	day := m.grid.DayIndex(entry.Day) + dayDelta
	if day < 0 || day >= m.grid.NumDays() {
		return nil, timetable.Entry{}, 0
	}

	cells := make(map[cellKey]bool, len(entry.Periods))
	start := 0
	for i, p := range entry.Periods {
		shifted := p + slotDelta
		if i == 0 {
			start = shifted
		}
		if shifted < 1 || shifted > m.grid.NumSlots {
			continue
		}
		cells[cellKey{day: day, period: shifted}] = true
	}
	return cells, entry, start
}

// renderFooter renders the status and help lines.
func (m Model) renderFooter() []string {
	status := ""
	if m.statusMsg != "" {
		status = m.styles.StatusStyle.Render(m.statusMsg)
	}

	help := "hjkl 이동 · enter 잡기 · / 검색 · s 빈칸검색 · x 삭제 · n/d/D 시간표 · y 복사 · r 새로고침 · q 종료"
	switch m.mode {
	case ModeMove:
		help = "hjkl 이동 · enter 놓기 · esc 취소"
	case ModeConfirm:
		help = "y 삭제 · n 취소"
	}

	return []string{status, m.styles.HelpStyle.Render(help)}
}

// renderSearchModal renders the lecture search dialog.
func (m Model) renderSearchModal() string {
	const innerWidth = 56

	var b strings.Builder
	b.WriteString(m.styles.ModalTitleStyle.Render("강의 검색"))
	b.WriteString("\n\n")
	b.WriteString(m.search.input.View())
	b.WriteString("\n")
	b.WriteString(m.searchFilterLine())
	b.WriteString("\n\n")

	start, end := m.search.pager.GetSliceBounds(len(m.search.results))
	page := m.search.results[start:end]
	if len(page) == 0 {
		b.WriteString(m.styles.ModalHintStyle.Render("검색 결과 없음"))
		b.WriteString("\n")
	}
	for i, lec := range page {
		line := fmt.Sprintf("%s  %d학년 %s학점  %s", lec.Title, lec.Grade, lec.Credits, lec.Schedule)
		line = cellTruncate(line, innerWidth)
		style := m.styles.ResultStyle
		if i == m.search.selected {
			style = m.styles.ResultSelectedStyle
		}
		b.WriteString(style.Width(innerWidth).Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.search.pager.View())
	b.WriteString("\n")
	b.WriteString(m.styles.ModalHintStyle.Render("enter 추가 · tab 페이지 · ^G 학년 · ^J 요일 · ^K 교시 · ^R 초기화 · esc 닫기"))

	return m.styles.ModalStyle.Render(b.String())
}

// renderConfirmModal renders the destructive-action confirmation.
func (m Model) renderConfirmModal() string {
	var b strings.Builder
	b.WriteString(m.styles.ModalTitleStyle.Render(m.confirmMessage))
	b.WriteString("\n\n")
	b.WriteString(m.styles.ModalHintStyle.Render("y 삭제 · n 취소"))
	return m.styles.ModalStyle.Render(b.String())
}
