package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Pause        key.Binding
	MoreWorkers  key.Binding
	FewerWorkers key.Binding
	Reset        key.Binding
	Help         key.Binding
	Quit         key.Binding
	Esc          key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p/space", "pause workload"),
		),
		MoreWorkers: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "add worker"),
		),
		FewerWorkers: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "remove worker"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset rate history"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}
