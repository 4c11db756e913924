package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// maxLogLines bounds the log pane's history.
const maxLogLines = 500

type Model struct {
	tui *TUI

	focus focusArea

	width  int
	height int

	quitKey string
	lastkey string
	didInit bool
	gotSize bool

	showLog bool

	// notice is shown in the footer until the next key press.
	notice string

	results viewport.Model
	logs    []string

	spinner spinner.Model

	help viewport.Model
}

func (m *Model) Init() tea.Cmd {
	m.results = viewport.New(m.width, m.height)
	m.help = viewport.New(m.width, m.height)

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Jump

	m.showLog = true
	m.didInit = true

	cmd := func() tea.Msg { return msgInitialized{} }
	return tea.Batch(cmd, m.spinner.Tick)
}

type focusArea int

const (
	focusResults focusArea = iota
	focusHelp
)
