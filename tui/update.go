package tui

import (
	"strings"

	"github.com/amonks/fanout/internal/help"
	"github.com/amonks/fanout/internal/styles"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case msgInitialized, msgStoreUpdated:
		m.refreshResults()
		return m, nil

	case msgLog:
		m.logs = append(m.logs, string(msg))
		if over := len(m.logs) - maxLogLines; over > 0 {
			m.logs = m.logs[over:]
		}
		return m, nil

	case tea.MouseMsg:
		if m.focus == focusHelp {
			return m.passthroughToHelp(msg)
		}

		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
			if zone.Get(uiZoneStart).InBounds(msg) {
				m.launch()
			}
			return m, nil
		}

		if zone.Get(uiZoneResults).InBounds(msg) {
			return m.passthroughToResults(msg)
		}

		return m, nil

	case tea.KeyMsg:
		if !m.didInit || !m.gotSize {
			return m, nil
		}

		// ctrl+c always quits, whatever has focus.
		if key.Matches(msg, keys.ForceQuit) {
			return m.handleQuitAttempt(msg.String())
		}
		if m.quitKey == msg.String() {
			return m, tea.Quit
		}
		m.quitKey = ""
		m.notice = ""

		if m.focus == focusHelp {
			switch {
			case key.Matches(msg, keys.Help, keys.Quit):
				m.focus = focusResults
				return m, nil
			default:
				return m.passthroughToHelp(msg)
			}
		}

		lastkey := m.lastkey
		m.lastkey = msg.String()

		switch {
		case key.Matches(msg, keys.Quit):
			return m.handleQuitAttempt(msg.String())

		case key.Matches(msg, keys.Help):
			m.focus = focusHelp
			return m, nil

		case key.Matches(msg, keys.Launch):
			m.launch()
			return m, nil

		case key.Matches(msg, keys.Log):
			m.showLog = !m.showLog
			m.resize()
			return m, nil

		case key.Matches(msg, keys.Up):
			m.results.LineUp(1)
		case key.Matches(msg, keys.Down):
			m.results.LineDown(1)
		case key.Matches(msg, keys.PageUp):
			m.results.ViewUp()
		case key.Matches(msg, keys.PageDown):
			m.results.ViewDown()
		case key.Matches(msg, keys.HalfUp):
			m.results.HalfViewUp()
		case key.Matches(msg, keys.HalfDown):
			m.results.HalfViewDown()

		case key.Matches(msg, keys.Top):
			if msg.String() == "g" && lastkey != "g" {
				return m, nil
			}
			m.results.GotoTop()
		case key.Matches(msg, keys.Bottom):
			m.results.GotoBottom()
		}
		return m, nil

	case tea.WindowSizeMsg:
		if !m.didInit {
			return m, nil
		}
		m.help.Width, m.help.Height = msg.Width, msg.Height
		m.help.SetContent(helpMenu.Render(help.Colored))
		m.width, m.height = msg.Width, msg.Height
		m.gotSize = true
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

// launch starts a batch. A refused launch is reported in the footer until
// the next key press.
func (m *Model) launch() {
	if _, err := m.tui.launch(); err != nil {
		m.notice = err.Error()
	}
}

func (m *Model) resize() {
	l := m.layout()
	m.results.Width, m.results.Height = m.width, l.resultsHeight
	m.refreshResults()
}

// refreshResults reloads the results from the store. If the viewport was
// showing the last result, it keeps doing so.
func (m *Model) refreshResults() {
	follow := m.results.AtBottom()

	snapshot := m.tui.store.Snapshot()
	lines := make([]string, len(snapshot))
	for i, result := range snapshot {
		line := styles.Result.Render(result)
		if m.width > 0 {
			line = truncate.StringWithTail(line, uint(m.width), "…")
		}
		lines[i] = line
	}
	m.results.SetContent(strings.Join(lines, "\n"))

	if follow {
		m.results.GotoBottom()
	}
}

func (m *Model) passthroughToResults(msg tea.Msg) (*Model, tea.Cmd) {
	newResults, cmd := m.results.Update(msg)
	m.results = newResults
	return m, cmd
}

func (m *Model) passthroughToHelp(msg tea.Msg) (*Model, tea.Cmd) {
	newHelp, cmd := m.help.Update(msg)
	m.help = newHelp
	return m, cmd
}

func (m *Model) handleQuitAttempt(key string) (*Model, tea.Cmd) {
	if m.quitKey == key {
		return m, tea.Quit
	}
	m.quitKey = key
	return m, nil
}
