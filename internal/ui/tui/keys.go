package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Collect key.Binding
	Buy     key.Binding
	Upgrade key.Binding
	Reset   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Collect: key.NewBinding(key.WithKeys(" ", "c"), key.WithHelp("space/c", "collect data")),
		Buy:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "purchase")),
		Upgrade: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upgrade")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset data")),
		Help:    key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Collect, k.Buy, k.Upgrade, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Collect, k.Buy, k.Upgrade},
		{k.Reset, k.Help, k.Quit},
	}
}
