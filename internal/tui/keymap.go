// Package tui implements the interactive keyword and rule editor.
package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	AddKeyword  key.Binding
	Rename      key.Binding
	SetColumn   key.Binding
	AddAlias    key.Binding
	DeleteAlias key.Binding
	Delete      key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		AddKeyword: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add keyword"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		SetColumn: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "set column"),
		),
		AddAlias: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "add alias"),
		),
		DeleteAlias: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete last alias"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete keyword"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
