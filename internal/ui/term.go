package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the CLI output.
var (
	// Lecture titles: bold for scanability
	colorTitle = color.New(color.Bold)

	// Schedule strings: cyan, the payload people came for
	colorSchedule = color.New(color.FgCyan)

	// Metadata (grade, credits, major): secondary information
	colorMeta = color.New(color.FgWhite, color.Faint)

	// Headers: bold green
	colorHeader = color.New(color.FgGreen, color.Bold)

	// Warnings: offline snapshot notice and the like
	colorWarn = color.New(color.FgYellow)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatTitle formats a lecture title.
func formatTitle(s string) string {
	return colorTitle.Sprint(s)
}

// formatSchedule formats a schedule string.
func formatSchedule(s string) string {
	return colorSchedule.Sprint(s)
}

// formatMeta formats secondary lecture information.
func formatMeta(s string) string {
	return colorMeta.Sprint(s)
}

// formatHeader formats a section header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatWarn formats a warning notice.
func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}
