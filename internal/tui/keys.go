package tui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeys are always active on the desktop.
type GlobalKeys struct {
	Quit          key.Binding
	Help          key.Binding
	SystemMenu    key.Binding
	NetworkMenu   key.Binding
	ControlCenter key.Binding
	Search        key.Binding
	Close         key.Binding
}

var globalKeys = GlobalKeys{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+q"),
		key.WithHelp("Ctrl+q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+h"),
		key.WithHelp("Ctrl+h", "help"),
	),
	SystemMenu: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("F1", "system menu"),
	),
	NetworkMenu: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("F2", "wi-fi"),
	),
	ControlCenter: key.NewBinding(
		key.WithKeys("f3"),
		key.WithHelp("F3", "control center"),
	),
	Search: key.NewBinding(
		key.WithKeys("ctrl+@", "ctrl+ "),
		key.WithHelp("Ctrl+Space", "search"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "close"),
	),
}

// MenuKeys are active when a list overlay has focus.
type MenuKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

var menuKeys = MenuKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/↓", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↑/↓", "navigate"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("Enter", "select"),
	),
}

// SliderKeys adjust the control center sliders.
type SliderKeys struct {
	Decrease key.Binding
	Increase key.Binding
}

var sliderKeys = SliderKeys{
	Decrease: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/→", "adjust"),
	),
	Increase: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("←/→", "adjust"),
	),
}

// SearchKeys are active while the search field has focus. Letters go to the
// input, so only arrows move the selection.
type SearchKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

var searchKeys = SearchKeys{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑/↓", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↑/↓", "navigate"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "run"),
	),
}

// LockKeys for the login screen.
type LockKeys struct {
	Unlock key.Binding
}

var lockKeys = LockKeys{
	Unlock: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "log in"),
	),
}
