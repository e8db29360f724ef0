package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Connect    key.Binding
	Mint       key.Binding
	Disconnect key.Binding
	CopyAddr   key.Binding
	CopyHash   key.Binding
	Quit       key.Binding
	Help       key.Binding
	Enter      key.Binding
	Escape     key.Binding
	Tab        key.Binding
}

// ShortHelp is the one-line hint bar at the bottom of the main view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Connect, k.Mint, k.Disconnect, k.Help, k.Quit}
}

// FullHelp is the expanded help toggled with ?.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Connect, k.Mint, k.Disconnect},
		{k.CopyAddr, k.CopyHash},
		{k.Tab, k.Enter, k.Escape},
		{k.Help, k.Quit},
	}
}

var Keys = keyMap{
	Connect: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "connect"),
	),
	Mint: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mint"),
	),
	Disconnect: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "disconnect"),
	),
	CopyAddr: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "copy address"),
	),
	CopyHash: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "copy tx hash"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("⏎", "confirm"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "switch field"),
	),
}
