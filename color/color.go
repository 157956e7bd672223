// Package color provides the terminal colours used by the CLI.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Standard ANSI colours used for status text.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Purple = New("5")
)
