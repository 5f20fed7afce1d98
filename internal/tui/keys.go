package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"
)

// keyMap defines the navigation keys. Command mnemonics are resolved through
// nav.Resolve instead.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Mode   key.Binding
	Close  key.Binding
	Cancel key.Binding
	Abort  key.Binding
}

// ShortHelp returns keybindings to be shown in the About dialog
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.Mode, k.Close}
}

// FullHelp returns every navigation binding
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Mode, k.Close, k.Cancel, k.Abort},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "select"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "select"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "sort/tab"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "sort/tab"),
		),
		Mode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "list/detail"),
		),
		Close: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "close"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Abort: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// hint renders the short help of k as one plain line for the About dialog.
func (k keyMap) hint() string {
	h := help.New()
	h.ShortSeparator = "  "
	return ansi.Strip(h.ShortHelpView(k.ShortHelp()))
}
