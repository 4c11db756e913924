// Package styles holds the text styles shared by the runner's log output and
// both front ends.
package styles

import (
	"github.com/amonks/fanout/internal/color"
	"github.com/charmbracelet/lipgloss"
)

var (
	Log = lipgloss.NewStyle().
		Foreground(color.XLight).
		Italic(true)

	Error = lipgloss.NewStyle().
		Foreground(color.Red).
		Italic(true)

	Result = lipgloss.NewStyle().
		Foreground(color.XXXLight)
)
