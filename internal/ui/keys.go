package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the form.
type keyMap struct {
	NextField  key.Binding
	PrevField  key.Binding
	PlaceCall  key.Binding
	Save       key.Binding
	ToggleAuto key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		PlaceCall: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Place call"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save settings"),
		),
		ToggleAuto: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "Toggle auto answer"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "Toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "Quit"),
		),
	}
}
