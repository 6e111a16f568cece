package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/idilsaglam/todolist/internal/config"
)

type keyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
	Filter key.Binding
	Sort   key.Binding
	Quit   key.Binding

	// add mode
	Submit key.Binding
	Cancel key.Binding
}

func newKeyMap(k config.KeyMappings) keyMap {
	return keyMap{
		Add:    bind(k.Add, "add"),
		Toggle: bind(k.Toggle, "toggle"),
		Delete: bind(k.Delete, "delete"),
		Filter: bind(k.Filter, "filter"),
		Sort:   bind(k.Sort, "sort"),
		Quit:   key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(label(k.Quit), "quit")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) listKeys() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Filter, k.Sort, k.Quit}
}

func bind(k, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(k), key.WithHelp(label(k), desc))
}

func label(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
