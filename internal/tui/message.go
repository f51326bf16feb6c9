// Package tui renders the check command's human-facing status line: a
// colored match/no-match summary printed to the terminal in addition to
// the machine-readable result that always goes to stdout. It leaves
// chrome like banners and spinners to github.com/agentuity/go-common/tui.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	matchColor   = lipgloss.AdaptiveColor{Light: "#009900", Dark: "#00FF00"}
	matchStyle   = lipgloss.NewStyle().Foreground(matchColor)
	noMatchColor = lipgloss.AdaptiveColor{Light: "#990000", Dark: "#FF0000"}
	noMatchStyle = lipgloss.NewStyle().Foreground(noMatchColor)
	textColor    = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	textStyle    = lipgloss.NewStyle().Foreground(textColor)
)

// ShowMatch prints a green confirmation line to stderr.
func ShowMatch(msg string, args ...any) {
	fmt.Fprintln(os.Stderr, matchStyle.Render(" ✓ ")+textStyle.Render(fmt.Sprintf(msg, args...)))
}

// ShowNoMatch prints a red confirmation line to stderr.
func ShowNoMatch(msg string, args ...any) {
	fmt.Fprintln(os.Stderr, noMatchStyle.Render(" ✕ ")+textStyle.Render(fmt.Sprintf(msg, args...)))
}
