package cli

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

type plannerKeys struct {
	Next     key.Binding
	Prev     key.Binding
	Generate key.Binding
	Download key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Select   key.Binding
	Quit     key.Binding
}

func newPlannerKeys() plannerKeys {
	return plannerKeys{
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Generate: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "generate")),
		Download: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "download")),
		Left:     key.NewBinding(key.WithKeys("left", "h")),
		Right:    key.NewBinding(key.WithKeys("right", "l")),
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Select:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose pace")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

func (k plannerKeys) helpBindings() []key.Binding {
	return []key.Binding{k.Next, k.Generate, k.Download, k.Quit}
}

// planViewportKeyMap scrolls the plan with page keys only; arrows belong
// to the focused field.
func planViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
	}
}
