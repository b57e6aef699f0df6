package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/minjae-ko/siganpyo/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color

	// Title and table tabs
	TitleStyle     lipgloss.Style
	TabStyle       lipgloss.Style
	TabActiveStyle lipgloss.Style

	// Grid chrome
	DayHeaderStyle       lipgloss.Style
	DayHeaderCursorStyle lipgloss.Style
	TimeColumnStyle      lipgloss.Style
	EmptyCellStyle       lipgloss.Style
	CursorStyle          lipgloss.Style

	// Moving block preview
	MovePreviewStyle lipgloss.Style
	MoveSourceStyle  lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style

	// Search and confirm dialogs
	ModalStyle            lipgloss.Style
	ModalTitleStyle       lipgloss.Style
	ModalHintStyle        lipgloss.Style
	ModalBackdropColor    lipgloss.Color
	ResultStyle           lipgloss.Style
	ResultSelectedStyle   lipgloss.Style
	ResultMetaStyle       lipgloss.Style
	FilterActiveStyle     lipgloss.Style
	FilterInactiveStyle   lipgloss.Style
	ModalPlaceholderStyle lipgloss.Style
	ModalInputTextStyle   lipgloss.Style
	ModalInputCursorStyle lipgloss.Style

	palette *theme.Palette
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)
	s.palette = palette

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorWarning = palette.Warning

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.TabStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg).
		Padding(0, 1)

	s.TabActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBgSelection).
		Padding(0, 1)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.DayHeaderCursorStyle = s.DayHeaderStyle.
		Foreground(s.colorAccent)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.CursorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBgSelection)

	s.MovePreviewStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.TextOnWarning).
		Background(s.colorWarning)

	s.MoveSourceStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBgHighlight)

	s.StatusStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorWarning).
		Background(s.colorBg)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	modal := palette.Modal
	s.ModalBackdropColor = modal.Backdrop

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modal.Bg).
		Foreground(modal.Text).
		Padding(1, 2)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.ResultStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ResultSelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.ReverseText).
		Background(modal.Highlight)

	s.ResultMetaStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.FilterActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.ReverseText).
		Background(modal.Highlight).
		Padding(0, 1)

	s.FilterInactiveStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg).
		Padding(0, 1)

	s.ModalPlaceholderStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.ModalInputTextStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalInputCursorStyle = lipgloss.NewStyle().
		Foreground(modal.Bg).
		Background(modal.Highlight)

	return s
}

// BlockStyle returns the style for a lecture block, keyed by the lecture
// id so every block of the same lecture shares one color.
func (s *Styles) BlockStyle(lectureID string) lipgloss.Style {
	block := s.palette.BlockFor(lectureID)
	return lipgloss.NewStyle().
		Foreground(block.Fg).
		Background(block.Bg)
}

// BlockAltStyle returns the alternate shade for a lecture block, used
// when two different blocks of the same color touch.
func (s *Styles) BlockAltStyle(lectureID string) lipgloss.Style {
	block := s.palette.BlockFor(lectureID)
	return lipgloss.NewStyle().
		Foreground(block.Fg).
		Background(block.BgAlt)
}
