// Package style provides a functional API for composing and applying lipgloss-based terminal styles.
package style

import (
	"github.com/afcharts/afcharts/color"
	"github.com/charmbracelet/lipgloss"
)

// Brand accents, taken from the Analysis Function core colours.
var (
	AccentColor    = lipgloss.Color("#28A197") // turquoise
	SecondaryColor = lipgloss.Color("#2073BC") // mid blue
	ErrorColor     = lipgloss.Color("#C00000") // rag red
)

// New returns an empty lipgloss.Style used as a foundation for visual composition.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored initializes a new style with the specified foreground and background colors.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a rendering function that applies the foreground color to a string.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

// Swatch renders a solid block of the given hex colour, width cells wide.
func Swatch(hex string, width int) string {
	if width < 1 {
		width = 1
	}
	return New().Background(lipgloss.Color(hex)).Width(width).Render("")
}

var (
	Faint  = func(s string) string { return New().Faint(true).Render(s) }
	Bold   = func(s string) string { return New().Bold(true).Render(s) }
)

// Title renders a padded banner on the brand accent.
var Title = func(s string) string {
	return Colored(color.New("#FFFFFF"), lipgloss.Color("#12436D")).Padding(0, 1).Render(s)
}

// Tag returns a rendering function that wraps a string in a colored, padded tag block.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}
