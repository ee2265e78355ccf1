// Package modal implements the modal host: a slot that can present one
// component above the active view and deliver its eventual result.
package modal

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shauncurtis/viewman/internal/ui/common"
	"github.com/shauncurtis/viewman/internal/ui/viewstate"
)

// CloseMsg is emitted by modal content when its interaction completes.
type CloseMsg struct {
	Value    any
	Canceled bool
}

// ResultMsg is the eventual result of a Show call, delivered on the program
// loop once the modal's interaction completes.
type ResultMsg struct {
	Value    any
	Canceled bool
	Err      error
}

// Close completes the active modal with a value.
func Close(value any) tea.Cmd {
	return common.NewCmd(CloseMsg{Value: value})
}

// Cancel dismisses the active modal without a value.
func Cancel() tea.Cmd {
	return common.NewCmd(CloseMsg{Canceled: true})
}

type showMsg struct {
	view  common.View
	title string
	err   error
}

// Host owns the modal slot's show/hide state machine. The controller holds
// a single reference to it and drives it only through Show.
type Host struct {
	active common.View
	title  string
	styles styles
}

type styles struct {
	border lipgloss.Style
	title  lipgloss.Style
	text   lipgloss.Style
}

type Option func(*request)

type request struct {
	title      string
	parameters map[string]any
}

// WithTitle sets the modal's title bar text.
func WithTitle(title string) Option {
	return func(r *request) {
		r.title = title
	}
}

// WithParameters supplies construction parameters for the modal component.
func WithParameters(parameters map[string]any) Option {
	return func(r *request) {
		r.parameters = parameters
	}
}

func NewHost() *Host {
	return &Host{
		styles: styles{
			border: common.DefaultPalette.GetBorder("modal border", lipgloss.RoundedBorder()),
			title:  common.DefaultPalette.Get("modal title"),
			text:   common.DefaultPalette.Get("modal text"),
		},
	}
}

// Show constructs the identified component and presents it. The returned
// command must run on the program loop; the eventual ResultMsg follows once
// the interaction completes. Construction failure surfaces in the ResultMsg,
// it never panics the host.
func (h *Host) Show(identity viewstate.Identity, opts ...Option) tea.Cmd {
	req := &request{}
	for _, opt := range opts {
		opt(req)
	}
	return func() tea.Msg {
		state, err := viewstate.New(identity, req.parameters)
		if err != nil {
			return showMsg{err: err}
		}
		view, err := identity.Construct(state)
		if err != nil {
			return showMsg{err: err}
		}
		return showMsg{view: view, title: req.title}
	}
}

// ShowView presents an already constructed component.
func (h *Host) ShowView(view common.View, opts ...Option) tea.Cmd {
	req := &request{}
	for _, opt := range opts {
		opt(req)
	}
	return common.NewCmd(showMsg{view: view, title: req.title})
}

// Active reports whether a modal is currently presented.
func (h *Host) Active() bool {
	return h.active != nil
}

func (h *Host) Init() tea.Cmd {
	return nil
}

func (h *Host) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case showMsg:
		if msg.err != nil {
			return common.NewCmd(ResultMsg{Err: msg.err})
		}
		h.active = msg.view
		h.title = msg.title
		return h.active.Init()
	case CloseMsg:
		if h.active == nil {
			return nil
		}
		h.active = nil
		h.title = ""
		return common.NewCmd(ResultMsg{Value: msg.Value, Canceled: msg.Canceled})
	case common.CloseOverlayMsg:
		if h.active == nil {
			return nil
		}
		return Cancel()
	}
	if h.active != nil {
		return h.active.Update(msg)
	}
	return nil
}

// View renders the modal box sized to fit the given area. Empty when
// inactive; the slot itself is always part of the composition so a modal
// can be raised at any time. The caller positions the box.
func (h *Host) View(width, height int) string {
	if h.active == nil {
		return ""
	}

	contentWidth := min(width-6, 60)
	contentHeight := min(height-4, 20)
	if contentWidth <= 0 || contentHeight <= 0 {
		return ""
	}

	body := h.active.View(contentWidth, contentHeight)
	if h.title != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, h.styles.title.Render(h.title), body)
	}
	return h.styles.border.Padding(0, 1).Render(body)
}
