package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines global and pane-specific bindings.
type KeyMap struct {
	Abort       key.Binding
	Accept      key.Binding
	ToggleFocus key.Binding
	ToggleList  key.Binding
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Help        key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Abort:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "abort, write nothing")),
		Accept:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write resolutions")),
		ToggleFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		ToggleList:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle file list")),
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "move up")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "move down")),
		Top:         key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

func (k KeyMap) bindings() []key.Binding {
	return []key.Binding{k.Accept, k.Abort, k.ToggleFocus, k.ToggleList, k.Up, k.Down, k.Top, k.Bottom, k.Help}
}
