package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Confirm  key.Binding
	Deny     key.Binding
	Switch   key.Binding
}

// Keys are shared by the dialog and the confirm prompt. Letters are left
// alone: in the search dialog they always belong to the keyword entry.
var Keys = KeyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Up:       key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("up", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("down", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Confirm:  key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	Deny:     key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
	Switch:   key.NewBinding(key.WithKeys("tab", "left", "right", "h", "l"), key.WithHelp("tab", "switch")),
}
