package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/minjae-ko/siganpyo/internal/lecture"
	"github.com/minjae-ko/siganpyo/internal/tui/commands"
)

// searchState holds the lecture search dialog: a query input, the
// composed filter, and the paged result list.
type searchState struct {
	input    textinput.Model
	pager    paginator.Model
	filter   lecture.Filter
	results  []*lecture.Lecture
	selected int // index within the current page
	seq      int // debounce sequence for the query input
}

func newSearchState(styles *Styles, pageSize int) searchState {
	ti := textinput.New()
	ti.Placeholder = "강의명 검색"
	ti.CharLimit = 64
	ti.Width = 36
	ti.PlaceholderStyle = styles.ModalPlaceholderStyle
	ti.TextStyle = styles.ModalInputTextStyle
	ti.PromptStyle = styles.ModalInputTextStyle
	ti.Cursor.Style = styles.ModalInputCursorStyle

	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = pageSize
	p.ActiveDot = styles.ResultSelectedStyle.Render("•")
	p.InactiveDot = styles.ResultMetaStyle.Render("•")

	return searchState{input: ti, pager: p}
}

// open resets the dialog with an initial filter and focuses the input.
func (s *searchState) open(filter lecture.Filter) {
	s.filter = filter
	s.input.SetValue(filter.Query)
	s.input.Focus()
	s.selected = 0
	s.pager.Page = 0
}

func (s *searchState) close() {
	s.input.Blur()
	s.input.SetValue("")
	s.results = nil
}

// apply runs the current filter over the catalog and resets paging.
func (s *searchState) apply(lectures []*lecture.Lecture, cache *lecture.ParseCache) {
	s.results = s.results[:0:0]
	for _, l := range lectures {
		if s.filter.Matches(l, cache) {
			s.results = append(s.results, l)
		}
	}
	s.pager.Page = 0
	s.pager.SetTotalPages(len(s.results))
	s.selected = 0
}

// current returns the highlighted lecture, if any.
func (s *searchState) current() (*lecture.Lecture, bool) {
	start, end := s.pager.GetSliceBounds(len(s.results))
	page := s.results[start:end]
	if s.selected < 0 || s.selected >= len(page) {
		return nil, false
	}
	return page[s.selected], true
}

// pageLen returns the number of results on the current page.
func (s *searchState) pageLen() int {
	start, end := s.pager.GetSliceBounds(len(s.results))
	return end - start
}

// handleSearchKeys handles keys while the search dialog is open.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.close()
		m.mode = ModeNormal
		return m, nil

	case "enter":
		lec, ok := m.search.current()
		if !ok {
			m.setStatus("No lecture selected")
			return m, nil
		}
		return m.placeLecture(lec)

	case "up":
		if m.search.selected > 0 {
			m.search.selected--
		}
		return m, nil

	case "down":
		if m.search.selected < m.search.pageLen()-1 {
			m.search.selected++
		}
		return m, nil

	case "tab":
		m.search.pager.NextPage()
		m.search.selected = 0
		return m, nil

	case "shift+tab":
		m.search.pager.PrevPage()
		m.search.selected = 0
		return m, nil

	// Filter toggles re-run the search immediately; only the free-text
	// query is debounced.
	case "ctrl+g":
		m.search.filter.Grade = (m.search.filter.Grade + 1) % 5
		m.search.apply(m.lectures, m.parse)
		return m, nil

	case "ctrl+j":
		m.search.filter.Day = m.nextFilterDay(m.search.filter.Day)
		m.search.apply(m.lectures, m.parse)
		return m, nil

	case "ctrl+k":
		m.search.filter.Period = (m.search.filter.Period + 1) % (m.grid.NumSlots + 1)
		m.search.apply(m.lectures, m.parse)
		return m, nil

	case "ctrl+r":
		m.search.filter = lecture.Filter{}
		m.search.input.SetValue("")
		m.search.apply(m.lectures, m.parse)
		return m, nil
	}

	before := m.search.input.Value()
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	if v := m.search.input.Value(); v != before {
		m.search.filter.Query = v
		m.search.seq++
		debounce := time.Duration(m.cfg.Search.DebounceMillis) * time.Millisecond
		return m, tea.Batch(cmd, commands.DebounceFilter(debounce, m.search.seq))
	}
	return m, cmd
}

// nextFilterDay cycles through "no day", then each configured day.
func (m Model) nextFilterDay(day string) string {
	if day == "" {
		return m.grid.Days[0]
	}
	idx := m.grid.DayIndex(day)
	if idx < 0 || idx == m.grid.NumDays()-1 {
		return ""
	}
	return m.grid.Days[idx+1]
}

// placeLecture parses the lecture's schedule and appends its meetings to
// the active table, then closes the dialog.
func (m Model) placeLecture(lec *lecture.Lecture) (tea.Model, tea.Cmd) {
	tableID := m.activeTableID()
	updated := m.tables.Place(tableID, lec)
	if len(updated.Entries(tableID)) == len(m.tables.Entries(tableID)) {
		m.setStatus("%s: no placeable meetings", lec.Title)
		return m, nil
	}

	m.tables = updated
	m.search.close()
	m.mode = ModeNormal
	m.setStatus("Added %s", lec.Title)
	LogPlace(tableID, lec.ID)
	return m, nil
}

// searchFilterLine renders the active filter toggles for the dialog.
func (m Model) searchFilterLine() string {
	var parts []string

	style := func(active bool) func(string) string {
		if active {
			return func(s string) string { return m.styles.FilterActiveStyle.Render(s) }
		}
		return func(s string) string { return m.styles.FilterInactiveStyle.Render(s) }
	}

	grade := "전학년"
	if m.search.filter.Grade != 0 {
		grade = fmt.Sprintf("%d학년", m.search.filter.Grade)
	}
	parts = append(parts, style(m.search.filter.Grade != 0)(grade))

	day := "요일무관"
	if m.search.filter.Day != "" {
		day = m.search.filter.Day + "요일"
	}
	parts = append(parts, style(m.search.filter.Day != "")(day))

	period := "교시무관"
	if m.search.filter.Period != 0 {
		period = fmt.Sprintf("%d교시 %s", m.search.filter.Period, m.grid.SlotLabel(m.search.filter.Period))
	}
	parts = append(parts, style(m.search.filter.Period != 0)(period))

	return strings.Join(parts, " ")
}
