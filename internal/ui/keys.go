package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the picker bindings. Filter editing keys are handled in
// input.go before these are consulted.
type keyMap struct {
	Up             key.Binding
	Down           key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
	Home           key.Binding
	End            key.Binding
	Confirm        key.Binding
	Cancel         key.Binding
	Quit           key.Binding
	Fold           key.Binding
	CollapseAll    key.Binding
	ExpandAll      key.Binding
	ToggleFavorite key.Binding
	ToggleContext  key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("home", "first"),
	),
	End: key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("end", "last"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Fold: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "fold"),
	),
	CollapseAll: key.NewBinding(
		key.WithKeys("alt+c"),
		key.WithHelp("alt+c", "collapse all"),
	),
	ExpandAll: key.NewBinding(
		key.WithKeys("alt+e"),
		key.WithHelp("alt+e", "expand all"),
	),
	ToggleFavorite: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "favorite"),
	),
	ToggleContext: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "context"),
	),
}

// footerBindings are rendered in the optional footer row.
func (k keyMap) footerBindings() []key.Binding {
	return []key.Binding{k.Up, k.Confirm, k.Fold, k.ToggleFavorite, k.ToggleContext, k.Cancel}
}
