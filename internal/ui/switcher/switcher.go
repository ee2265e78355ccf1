// Package switcher is a fuzzy view palette shown in the modal slot: type
// to filter registered views, enter to navigate.
package switcher

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shauncurtis/viewman/internal/ui/common"
	"github.com/shauncurtis/viewman/internal/ui/controller"
	"github.com/shauncurtis/viewman/internal/ui/modal"
	"github.com/shauncurtis/viewman/internal/ui/registry"
	"github.com/shauncurtis/viewman/internal/ui/viewstate"
)

const maxVisibleItems = 10

var (
	_ common.View      = (*Model)(nil)
	_ common.Focusable = (*Model)(nil)
)

type Model struct {
	registry *registry.Registry
	input    textinput.Model
	filtered []string
	selected int
	styles   styles
}

type styles struct {
	text     lipgloss.Style
	selected lipgloss.Style
	input    lipgloss.Style
	dimmed   lipgloss.Style
}

func New(reg *registry.Registry) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "view name..."
	ti.CharLimit = 60
	ti.Width = 30

	return &Model{
		registry: reg,
		input:    ti,
		filtered: reg.Search(""),
		styles: styles{
			text:     common.DefaultPalette.Get("switcher text"),
			selected: common.DefaultPalette.Get("switcher selected"),
			input:    common.DefaultPalette.Get("switcher input"),
			dimmed:   common.DefaultPalette.Get("dimmed"),
		},
	}
}

func (m *Model) IsFocused() bool {
	return true
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	switch keyMsg.String() {
	case "esc":
		return modal.Cancel()
	case "up", "ctrl+p":
		m.move(-1)
		return nil
	case "down", "ctrl+n":
		m.move(1)
		return nil
	case "enter":
		return m.selectCurrent()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	m.filter()
	return cmd
}

func (m *Model) filter() {
	m.filtered = m.registry.Search(m.input.Value())
	if m.selected >= len(m.filtered) {
		m.selected = 0
	}
}

func (m *Model) move(delta int) {
	if len(m.filtered) == 0 {
		return
	}
	next := m.selected + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.filtered) {
		next = len(m.filtered) - 1
	}
	m.selected = next
}

// selectCurrent closes the palette and navigates to the chosen view in one
// batch; the controller receives the load after the host delivers the
// result.
func (m *Model) selectCurrent() tea.Cmd {
	if len(m.filtered) == 0 {
		return modal.Cancel()
	}
	name := m.filtered[m.selected]
	entry, ok := m.registry.Resolve(name)
	if !ok {
		return modal.Cancel()
	}
	state, err := viewstate.New(entry, nil)
	if err != nil {
		return modal.Cancel()
	}
	return tea.Batch(modal.Close(name), controller.LoadView(state))
}

func (m *Model) View(width, height int) string {
	var w strings.Builder
	w.WriteString(m.styles.input.Render(m.input.View()))
	w.WriteString("\n")

	visible := m.filtered
	if len(visible) > maxVisibleItems {
		visible = visible[:maxVisibleItems]
	}
	if len(visible) == 0 {
		w.WriteString(m.styles.dimmed.Render("no matching views"))
		return w.String()
	}
	for i, name := range visible {
		style := m.styles.text
		if i == m.selected {
			style = m.styles.selected
		}
		w.WriteString(style.Padding(0, 1).MaxWidth(width).Render(name))
		if i < len(visible)-1 {
			w.WriteString("\n")
		}
	}
	return w.String()
}
