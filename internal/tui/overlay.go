package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// OverlayModel composites a centered dialog over the base view. The
// dialog box is exactly the content's size, clamped to the screen.
type OverlayModel struct {
	active  bool
	bgColor lipgloss.Color
}

// NewOverlayModel initializes an overlay model.
func NewOverlayModel() OverlayModel {
	return OverlayModel{}
}

// Active reports whether the overlay is visible.
func (o OverlayModel) Active() bool {
	return o.active
}

// SetBackground updates the backdrop color painted around the content.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// Render draws the content centered on top of base.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 || content == "" {
		return base
	}

	contentLines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	boxW, boxH := 0, len(contentLines)
	for _, line := range contentLines {
		if w := lipgloss.Width(line); w > boxW {
			boxW = w
		}
	}
	if boxW > width {
		boxW = width
	}
	if boxH > height {
		boxH = height
		contentLines = contentLines[:boxH]
	}
	if boxW <= 0 || boxH <= 0 {
		return base
	}

	top := (height - boxH) / 2
	left := (width - boxW) / 2

	baseLines := normalizeLines(base, width, height)
	bgSeq := ansi.Style{}.BackgroundColor(ansi.XParseColor(string(o.bgColor))).String()

	out := make([]string, 0, height)
	for row := 0; row < height; row++ {
		if row < top || row >= top+boxH {
			out = append(out, baseLines[row])
			continue
		}

		line := contentLines[row-top]
		lineW := lipgloss.Width(line)
		if lineW > boxW {
			line = ansi.Cut(line, 0, boxW)
			lineW = boxW
		}
		if lineW < boxW {
			line += bgSeq + strings.Repeat(" ", boxW-lineW) + ansi.ResetStyle
		}
		line = restoreBackdrop(line, bgSeq)

		baseLine := baseLines[row]
		out = append(out, ansi.Cut(baseLine, 0, left)+line+ansi.Cut(baseLine, left+boxW, width))
	}

	return strings.Join(out, "\n")
}

// restoreBackdrop re-applies the backdrop color after any reset inside
// the content, so styled fragments do not punch holes in the box.
func restoreBackdrop(line, bgSeq string) string {
	if bgSeq == "" || line == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+bgSeq)
	return line
}

// normalizeLines pads or trims base content to an exact width and height.
func normalizeLines(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		w := lipgloss.Width(line)
		switch {
		case w > width:
			lines[i] = ansi.Cut(line, 0, width)
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}
