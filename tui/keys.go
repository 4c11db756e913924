package tui

import (
	"github.com/amonks/fanout/internal/help"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Launch    key.Binding
	Log       key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

var keys = keyMap{
	Launch:    key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter or space", "start tasks")),
	Log:       key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "toggle log")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "show help")),
	Quit:      key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c ctrl+c", "quit")),

	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑ or k", "up one line")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓ or j", "down one line")),
	PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "up one page")),
	PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "down one page")),
	HalfUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "up ½page")),
	HalfDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "down ½page")),
	Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home or gg", "go to top")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end or G", "go to tail")),
}

var helpMenu = help.Menu{
	section("Results",
		keys.Launch, keys.Help, keys.Quit, keys.ForceQuit, keys.Log,
		keys.Up, keys.Down, keys.PageUp, keys.PageDown,
		keys.HalfUp, keys.HalfDown, keys.Top, keys.Bottom),
	{
		Title: "Mouse",
		Keys: []help.Key{
			{Keys: "click", Desc: "start tasks"},
			{Keys: "wheel", Desc: "scroll results"},
		},
	},
	{
		Title: "Help",
		Keys: []help.Key{
			{Keys: "esc or q", Desc: "exit help"},
			{Keys: "ctrl+c", Desc: "quit"},
		},
	},
}

func section(title string, bindings ...key.Binding) help.Section {
	s := help.Section{Title: title}
	for _, b := range bindings {
		h := b.Help()
		s.Keys = append(s.Keys, help.Key{Keys: h.Key, Desc: h.Desc})
	}
	return s
}
