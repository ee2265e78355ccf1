package common

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is a unit of UI selected by identity and parameters; the equivalent of
// a "page" in a routed application, here controller-selected.
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
}

// Focusable lets a view report that it is capturing input, so the app shell
// can suppress global key bindings while it is active.
type Focusable interface {
	IsFocused() bool
}

// Titled views contribute their own title to the surrounding layout.
type Titled interface {
	Title() string
}

// Navigator is the read-only controller contract handed to components that
// mark themselves against the current view. Components receive it explicitly;
// there is no ambient controller singleton.
type Navigator interface {
	IsCurrentView(name string) bool
	IsLocked() bool
}
