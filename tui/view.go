package tui

import (
	"fmt"
	"strings"

	"github.com/amonks/fanout/internal/help"
	"github.com/amonks/fanout/internal/styles"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

type uiZone = string

const (
	uiZoneStart   uiZone = "start"
	uiZoneResults uiZone = "results"
)

func (m *Model) View() string {
	if !m.didInit || !m.gotSize {
		return ""
	}

	if m.focus == focusHelp {
		return m.help.View()
	}

	l := m.layout()

	sections := []string{
		m.renderHeader(),
		labelStyle.Render("Task results:"),
		zone.Mark(uiZoneResults, m.results.View()),
	}
	if l.includeLog {
		sections = append(sections, m.renderLog(l))
	}
	if l.includeFooter {
		sections = append(sections, m.renderFooter())
	}
	return zone.Scan(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

func (m *Model) renderHeader() string {
	button := zone.Mark(uiZoneStart, buttonStyle.Render("Start tasks"))
	return lipgloss.JoinHorizontal(lipgloss.Center, button, statusStyle.Render(m.renderStatus()))
}

func (m *Model) renderStatus() string {
	status := m.tui.status()

	var parts []string
	if status.Running > 0 {
		parts = append(parts, fmt.Sprintf("%s %d running", m.spinner.View(), status.Running))
	}
	parts = append(parts, plural(status.Completed, "batch", "batches")+" done")
	parts = append(parts, plural(m.tui.store.Len(), "result", "results"))
	if status.Rejected > 0 {
		parts = append(parts, fmt.Sprintf("%d rejected", status.Rejected))
	}
	return strings.Join(parts, " · ")
}

func (m *Model) renderLog(l layout) string {
	rule := ruleStyle.Render(strings.Repeat("─", m.width))

	var lines []string
	for _, line := range m.logs {
		wrapped := wrap.String(wordwrap.String(line, m.width), m.width)
		lines = append(lines, strings.Split(wrapped, "\n")...)
	}
	if over := len(lines) - l.logHeight; over > 0 {
		lines = lines[over:]
	}
	body := lipgloss.NewStyle().Height(l.logHeight).Render(strings.Join(lines, "\n"))

	return rule + "\n" + body
}

func (m *Model) renderFooter() string {
	switch {
	case m.quitKey != "":
		return footerStyle.Render("press " + m.quitKey + " again to quit")
	case m.notice != "":
		return styles.Error.Render(truncate.StringWithTail(m.notice, uint(m.width), "…"))
	default:
		return helpMenu[0].RenderInline(help.Monochrome, m.width, footerHeight)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
