package common

import (
	tea "github.com/charmbracelet/bubbletea"
)

// CloseOverlayMsg asks the shell to dismiss whatever overlay is on top.
type CloseOverlayMsg struct{}

// RefreshMsg asks the active view to reload whatever it is displaying.
type RefreshMsg struct{}

func CloseOverlay() tea.Msg {
	return CloseOverlayMsg{}
}

func Refresh() tea.Msg {
	return RefreshMsg{}
}

// NewCmd wraps a message in a command.
func NewCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
