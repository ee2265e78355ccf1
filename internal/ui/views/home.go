// Package views holds the built-in views: the landing page, a simulated
// weather report with load-on-demand data, and an editor demonstrating
// navigation locking while a draft is dirty.
package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shauncurtis/viewman/internal/ui/common"
	"github.com/shauncurtis/viewman/internal/ui/viewstate"
)

var (
	_ common.View   = (*Home)(nil)
	_ common.Titled = (*Home)(nil)
)

// Home is the landing view. A deep link can seed a note through the
// "Note" field, which survives until the view is navigated away from.
type Home struct {
	note   string
	styles homeStyles
}

type homeStyles struct {
	heading lipgloss.Style
	text    lipgloss.Style
	note    lipgloss.Style
}

func NewHome(state *viewstate.ViewState) *Home {
	h := &Home{
		styles: homeStyles{
			heading: common.DefaultPalette.Get("views heading"),
			text:    common.DefaultPalette.Get("text"),
			note:    common.DefaultPalette.Get("views note"),
		},
	}
	if note, ok := state.Field("Note"); ok {
		if note, ok := note.(string); ok {
			h.note = note
		}
	}
	return h
}

func (h *Home) Title() string {
	return "Home"
}

func (h *Home) Init() tea.Cmd {
	return nil
}

func (h *Home) Update(tea.Msg) tea.Cmd {
	return nil
}

func (h *Home) View(width, height int) string {
	lines := []string{
		h.styles.heading.Render("Welcome"),
		"",
		h.styles.text.Render("Pick a view from the rail, or press p for the palette."),
	}
	if h.note != "" {
		lines = append(lines, "", h.styles.note.Render("Note: "+h.note))
	}
	return lipgloss.NewStyle().MaxWidth(width).MaxHeight(height).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}
