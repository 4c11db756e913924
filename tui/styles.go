package tui

import (
	"github.com/amonks/fanout/internal/color"
	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight  = 3
	labelHeight   = 1
	footerHeight  = 1
	logPaneHeight = 6
)

var (
	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color.Blue).
			Foreground(color.XXXLight).
			Bold(true).
			Padding(0, 2)

	statusStyle = lipgloss.NewStyle().
			Foreground(color.XLight).
			PaddingLeft(2)

	labelStyle = lipgloss.NewStyle().
			Foreground(color.Yellow).
			Bold(true)

	ruleStyle = lipgloss.NewStyle().
			Foreground(color.XXDark)

	footerStyle = lipgloss.NewStyle().
			Foreground(color.Dark)
)

// layout is how the screen's height is split between the results and the
// optional panes around them.
type layout struct {
	resultsHeight int
	logHeight     int

	includeLog    bool
	includeFooter bool
}

func (m *Model) layout() layout {
	l := layout{includeFooter: m.height >= 8}

	rest := m.height - headerHeight - labelHeight
	if l.includeFooter {
		rest -= footerHeight
	}

	// The log pane only shows up when the results keep at least two thirds
	// of what's left.
	if m.showLog && rest >= 12 {
		l.includeLog = true
		l.logHeight = min(logPaneHeight, rest/3)
		rest -= l.logHeight + 1
	}

	l.resultsHeight = max(0, rest)
	return l
}
