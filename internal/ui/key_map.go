package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	start      key.Binding
	categories key.Binding
	cancel     key.Binding
	back       key.Binding
	restart    key.Binding
	quit       key.Binding
	forceQuit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		start:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "organize")),
		categories: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "categories")),
		cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		back:       key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc", "back")),
		restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "organize again")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		forceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.start, k.categories},
		{k.cancel, k.back},
		{k.restart, k.quit},
	}
}
