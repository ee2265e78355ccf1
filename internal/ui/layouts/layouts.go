// Package layouts provides the layout capability: a wrapper composition
// around a single child view. Layouts are resolved per view through the
// registry, with a configured default.
package layouts

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/shauncurtis/viewman/internal/ui/common"
)

// Content renders a child into the area the layout allots to it.
type Content func(width, height int) string

// Layout wraps one child composition. The layout decides how much of the
// area the child receives; the controller calls Render once per coalesced
// pass.
type Layout interface {
	Name() string
	Render(child Content, width, height int) string
}

// Set is the layout lookup table built at startup.
type Set struct {
	layouts map[string]Layout
}

func NewSet(layouts ...Layout) *Set {
	set := &Set{layouts: make(map[string]Layout, len(layouts))}
	for _, l := range layouts {
		set.layouts[l.Name()] = l
	}
	return set
}

func (s *Set) Add(layout Layout) {
	s.layouts[layout.Name()] = layout
}

func (s *Set) Resolve(name string) (Layout, bool) {
	layout, ok := s.layouts[name]
	return layout, ok
}

// Plain renders the child unadorned over the full area.
type Plain struct{}

func (Plain) Name() string { return "plain" }

func (Plain) Render(child Content, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, child(width, height))
}

// Main is the application chrome: a title bar, an optional sidebar rail,
// the child content, and a status line.
type Main struct {
	title   string
	sidebar func(width, height int) string
	status  func(width int) string
	styles  mainStyles
}

type mainStyles struct {
	title lipgloss.Style
	text  lipgloss.Style
}

type MainOption func(*Main)

// WithSidebar installs a rail rendered to the left of the content.
func WithSidebar(render func(width, height int) string) MainOption {
	return func(m *Main) {
		m.sidebar = render
	}
}

// WithStatus installs the bottom status line.
func WithStatus(render func(width int) string) MainOption {
	return func(m *Main) {
		m.status = render
	}
}

func NewMain(title string, opts ...MainOption) *Main {
	m := &Main{
		title: title,
		styles: mainStyles{
			title: common.DefaultPalette.Get("title"),
			text:  common.DefaultPalette.Get("text"),
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Main) Name() string { return "main" }

const sidebarWidth = 20

func (m *Main) Render(child Content, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	titleBar := m.styles.title.Width(width).Render(m.title)

	statusLine := ""
	statusHeight := 0
	if m.status != nil {
		statusLine = m.status(width)
		statusHeight = lipgloss.Height(statusLine)
	}

	contentHeight := height - lipgloss.Height(titleBar) - statusHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	var body string
	if m.sidebar != nil && width > 2*sidebarWidth {
		rail := lipgloss.Place(sidebarWidth, contentHeight, lipgloss.Left, lipgloss.Top,
			m.sidebar(sidebarWidth, contentHeight))
		content := lipgloss.Place(width-sidebarWidth, contentHeight, lipgloss.Left, lipgloss.Top,
			child(width-sidebarWidth, contentHeight))
		body = lipgloss.JoinHorizontal(lipgloss.Top, rail, content)
	} else {
		body = lipgloss.Place(width, contentHeight, lipgloss.Left, lipgloss.Top,
			child(width, contentHeight))
	}

	sections := []string{titleBar, body}
	if m.status != nil {
		sections = append(sections, statusLine)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
