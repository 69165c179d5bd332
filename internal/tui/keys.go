package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Cycle     key.Binding
	DryRun    key.Binding
	Refresh   key.Binding
	Routes    key.Binding
	Back      key.Binding
	Submit    key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("left", "right", "h", "l"),
			key.WithHelp("←/→", "change value"),
		),
		DryRun: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "dry-run"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "refresh balances"),
		),
		Routes: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "routes"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sign and submit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Cycle, k.DryRun, k.Refresh, k.Routes, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Cycle},
		{k.DryRun, k.Refresh, k.Routes},
		{k.Back, k.Submit, k.Quit},
	}
}
