package controller

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shauncurtis/viewman/internal/ui/modal"
)

type frameTickMsg struct{}

const defaultFrameInterval = 8 * time.Millisecond

var _ tea.Model = (*Shell)(nil)

// Shell adapts the controller to the host renderer and coalesces render
// passes: any number of navigation or state changes between two frames
// collapse into a single composition build reflecting the final state.
type Shell struct {
	controller    *Controller
	width         int
	height        int
	renderPending bool
	cachedFrame   string
	frameInterval time.Duration
	startupLink   string
	globalKeys    func(msg tea.KeyMsg) tea.Cmd
}

type ShellOption func(*Shell)

// WithFrameInterval sets the coalescing window between a render request
// and the pass that serves it.
func WithFrameInterval(d time.Duration) ShellOption {
	return func(s *Shell) {
		if d > 0 {
			s.frameInterval = d
		}
	}
}

// WithStartupLink restores a deep-link query string before the first
// render pass.
func WithStartupLink(raw string) ShellOption {
	return func(s *Shell) {
		s.startupLink = raw
	}
}

// WithGlobalKeys installs an application-level key handler, consulted
// before the controller routes input. Return nil to pass the key through.
func WithGlobalKeys(handler func(msg tea.KeyMsg) tea.Cmd) ShellOption {
	return func(s *Shell) {
		s.globalKeys = handler
	}
}

func NewShell(c *Controller, opts ...ShellOption) *Shell {
	s := &Shell{
		controller:    c,
		frameInterval: defaultFrameInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Shell) Controller() *Controller {
	return s.controller
}

// Init binds the modal host before the first composition, restores any
// startup deep link, and establishes the default view.
func (s *Shell) Init() tea.Cmd {
	s.controller.BindModalHost(modal.NewHost())

	var cmds []tea.Cmd
	if s.startupLink != "" {
		if err := s.controller.RestoreFromQueryString(s.startupLink); err != nil {
			log.Printf("viewman: startup link %q: %v", s.startupLink, err)
		}
	}
	if s.controller.CurrentView() == nil {
		if _, err := s.controller.LoadView(nil); err != nil {
			log.Printf("viewman: startup: %v", err)
		}
	}
	if cmd := s.controller.ensureActiveView(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, s.requestRender())
	return tea.Batch(cmds...)
}

func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameTickMsg:
		// pending clears before the composition builds, so a mutation
		// triggered during the build schedules a fresh pass instead of
		// being dropped
		s.renderPending = false
		comp := s.controller.BuildComposition()
		if comp.Fallback && comp.Reason != nil {
			log.Printf("viewman: rendering fallback: %v", comp.Reason)
		}
		s.cachedFrame = comp.Render(s.width, s.height)
		return s, nil
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, s.requestRender()
	case tea.KeyMsg:
		if s.globalKeys != nil {
			if cmd := s.globalKeys(msg); cmd != nil {
				return s, tea.Batch(cmd, s.requestRender())
			}
		}
	}

	cmd := s.controller.Update(msg)
	return s, tea.Batch(cmd, s.requestRender())
}

// requestRender arms a single frame tick. Requests arriving while one is
// pending are absorbed; the in-flight pass picks up every mutation made
// before it runs.
func (s *Shell) requestRender() tea.Cmd {
	if s.renderPending {
		return nil
	}
	s.renderPending = true
	return tea.Tick(s.frameInterval, func(time.Time) tea.Msg {
		return frameTickMsg{}
	})
}

// View hands the renderer the frame produced by the last coalesced pass.
func (s *Shell) View() string {
	return s.cachedFrame
}
