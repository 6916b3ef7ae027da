package tui

import "github.com/charmbracelet/bubbles/key"

// BoundaryKeyMap holds the bindings of a faulted Boundary
type BoundaryKeyMap struct {
	Retry key.Binding
}

// DefaultBoundaryKeyMap binds retry to r and enter. The binding starts
// disabled and is only enabled while the boundary is faulted.
func DefaultBoundaryKeyMap() BoundaryKeyMap {
	retry := key.NewBinding(
		key.WithKeys("r", "enter"),
		key.WithHelp("r", "try again"),
	)
	retry.SetEnabled(false)
	return BoundaryKeyMap{Retry: retry}
}

// PageKeyMap holds the page-level bindings
type PageKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Inject key.Binding
	Quit   key.Binding
	Retry  key.Binding
}

// DefaultPageKeyMap returns the page bindings
func DefaultPageKeyMap() PageKeyMap {
	return PageKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Inject: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle fault injector"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Retry: DefaultBoundaryKeyMap().Retry,
	}
}

// ShortHelp implements help.KeyMap
func (k PageKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Retry, k.Inject, k.Quit}
}

// FullHelp implements help.KeyMap
func (k PageKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Retry, k.Inject, k.Quit},
	}
}
