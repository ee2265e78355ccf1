// Package navlink is the navigation trigger component: a rail of links that
// load views through the controller and mark the active one. It depends
// only on the controller's public contract, passed in explicitly.
package navlink

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shauncurtis/viewman/internal/ui/common"
	"github.com/shauncurtis/viewman/internal/ui/controller"
	"github.com/shauncurtis/viewman/internal/ui/viewstate"
)

// Link is one navigation entry.
type Link struct {
	Label      string
	Target     viewstate.Identity
	Parameters map[string]any
	Binding    key.Binding
}

type Model struct {
	links  []Link
	nav    common.Navigator
	styles styles
}

type styles struct {
	text   lipgloss.Style
	active lipgloss.Style
	dimmed lipgloss.Style
}

func New(nav common.Navigator, links ...Link) *Model {
	return &Model{
		links: links,
		nav:   nav,
		styles: styles{
			text:   common.DefaultPalette.Get("navlink text"),
			active: common.DefaultPalette.Get("navlink active"),
			dimmed: common.DefaultPalette.Get("dimmed"),
		},
	}
}

// Update turns a matched key press into a navigation command. Each press
// constructs a fresh view state, so revisiting a link resets its fields.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	for _, link := range m.links {
		if !key.Matches(keyMsg, link.Binding) {
			continue
		}
		state, err := viewstate.New(link.Target, link.Parameters)
		if err != nil {
			return nil
		}
		return controller.LoadView(state)
	}
	return nil
}

// View renders the rail, one link per line. The active link is
// highlighted; while navigation is locked every link dims.
func (m *Model) View(width, height int) string {
	var lines []string
	locked := m.nav.IsLocked()
	for _, link := range m.links {
		style := m.styles.text
		prefix := "  "
		if m.nav.IsCurrentView(link.Target.Name()) {
			style = m.styles.active
			prefix = "> "
		}
		if locked {
			style = m.styles.dimmed
		}
		label := prefix + hint(link.Binding) + link.Label
		lines = append(lines, style.MaxWidth(width).Render(label))
		if len(lines) >= height {
			break
		}
	}
	return strings.Join(lines, "\n")
}

func hint(binding key.Binding) string {
	keys := binding.Keys()
	if len(keys) == 0 {
		return ""
	}
	return "[" + keys[0] + "] "
}
