// Package controller implements the view controller: the single owner of
// which view is displayed. Navigation happens by asking it to load a named
// view state, not by matching URLs; it guarantees exactly one active view,
// coalesced re-renders, and advisory locking for unsaved-changes guards.
package controller

import (
	"errors"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/atomic"

	"github.com/shauncurtis/viewman/internal/ui/common"
	"github.com/shauncurtis/viewman/internal/ui/deeplink"
	"github.com/shauncurtis/viewman/internal/ui/layouts"
	"github.com/shauncurtis/viewman/internal/ui/modal"
	"github.com/shauncurtis/viewman/internal/ui/registry"
	"github.com/shauncurtis/viewman/internal/ui/viewstate"
)

var (
	// ErrNoCurrentView means a render was requested with no resolvable
	// current view: no navigation happened and no default view is
	// registered. A setup error, not a runtime condition.
	ErrNoCurrentView = errors.New("controller: no resolvable current view")
	// ErrNoModalHost means ShowModal ran before the first composition
	// bound the modal host.
	ErrNoModalHost = errors.New("controller: modal host not bound")
)

// LoadViewMsg asks the controller to make the given state current. A nil
// State means "use the existing view, or the default".
type LoadViewMsg struct {
	State *viewstate.ViewState
}

// BackMsg swaps current and previous view states.
type BackMsg struct{}

// RestoreMsg applies a deep-link query string to the current view.
type RestoreMsg struct {
	Raw string
}

// LoadView marshals a navigation request onto the program loop. Callers
// that need to know whether navigation was accepted call
// Controller.LoadView on the loop instead; a locked controller drops the
// request silently here, matching the advisory-lock contract.
func LoadView(state *viewstate.ViewState) tea.Cmd {
	return common.NewCmd(LoadViewMsg{State: state})
}

// Back marshals a back navigation onto the program loop.
func Back() tea.Cmd {
	return common.NewCmd(BackMsg{})
}

// Restore marshals a deep-link restoration onto the program loop.
func Restore(raw string) tea.Cmd {
	return common.NewCmd(RestoreMsg{Raw: raw})
}

// Controller owns the current and previous view states. All mutation
// happens on the program loop; the lock flag alone is atomic so background
// work may guard navigation without marshaling.
type Controller struct {
	registry      *registry.Registry
	layouts       *layouts.Set
	defaultView   string
	defaultLayout string

	current  *viewstate.ViewState
	previous *viewstate.ViewState
	locked   atomic.Bool

	modalHost *modal.Host

	// the constructed instance for the current state, so a coalesced pass
	// does not rebuild an unchanged view
	activeView common.View
	activeErr  error
	activeFor  *viewstate.ViewState
}

var _ common.Navigator = (*Controller)(nil)

type Option func(*Controller)

// WithDefaultView names the view used when navigation is requested before
// any view was loaded.
func WithDefaultView(name string) Option {
	return func(c *Controller) {
		c.defaultView = name
	}
}

// WithDefaultLayout names the layout wrapping views that declare none.
func WithDefaultLayout(name string) Option {
	return func(c *Controller) {
		c.defaultLayout = name
	}
}

func New(reg *registry.Registry, layoutSet *layouts.Set, opts ...Option) *Controller {
	c := &Controller{
		registry: reg,
		layouts:  layoutSet,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadView makes state current and retains the prior state as previous.
// Returns false with no error when the navigation lock dropped the
// request. Must run on the program loop.
func (c *Controller) LoadView(state *viewstate.ViewState) (bool, error) {
	if c.locked.Load() {
		return false, nil
	}
	previous := c.current
	if state != nil {
		c.current = state
	} else if c.current == nil {
		c.current = c.defaultState()
	}
	if c.current == nil {
		return false, ErrNoCurrentView
	}
	c.previous = previous
	return true, nil
}

// Back swaps current and previous. One step deep: calling it twice returns
// to where you were. No-op while locked or without a previous view.
func (c *Controller) Back() bool {
	if c.locked.Load() || c.previous == nil {
		return false
	}
	c.current, c.previous = c.previous, c.current
	return true
}

// Lock blocks navigation until Unlock. Blocked requests are dropped, not
// queued. Safe to call from any goroutine.
func (c *Controller) Lock() {
	c.locked.Store(true)
}

func (c *Controller) Unlock() {
	c.locked.Store(false)
}

func (c *Controller) IsLocked() bool {
	return c.locked.Load()
}

// IsCurrentView reports whether the named view is displayed. Navigation
// triggers use it to mark themselves active.
func (c *Controller) IsCurrentView(name string) bool {
	return c.current != nil && c.current.Identity().Name() == name
}

func (c *Controller) CurrentView() *viewstate.ViewState {
	return c.current
}

func (c *Controller) PreviousView() *viewstate.ViewState {
	return c.previous
}

// BindModalHost wires the modal slot. Done once, before the first
// composition; later calls replace nothing.
func (c *Controller) BindModalHost(host *modal.Host) {
	if c.modalHost == nil {
		c.modalHost = host
	}
}

// ModalHost exposes the bound host, with an explicit not-yet-bound state.
func (c *Controller) ModalHost() (*modal.Host, bool) {
	return c.modalHost, c.modalHost != nil
}

// ShowModal presents the identified component in the modal slot. The
// eventual modal.ResultMsg reaches the active view through the program
// loop. Fails hard before the host is bound.
func (c *Controller) ShowModal(identity viewstate.Identity, opts ...modal.Option) (tea.Cmd, error) {
	if c.modalHost == nil {
		return nil, ErrNoModalHost
	}
	return c.modalHost.Show(identity, opts...), nil
}

// ShowModalView presents an already constructed component in the modal
// slot. Fails hard before the host is bound.
func (c *Controller) ShowModalView(view common.View, opts ...modal.Option) (tea.Cmd, error) {
	if c.modalHost == nil {
		return nil, ErrNoModalHost
	}
	return c.modalHost.ShowView(view, opts...), nil
}

// RestoreFromQueryString applies a decoded deep link. An unresolvable view
// name keeps the existing view; a link without a view name updates the
// current view in place, creating the default view first when none exists.
func (c *Controller) RestoreFromQueryString(raw string) error {
	update := deeplink.Decode(raw, c.resolveIdentity)

	if update.Identity != nil {
		state, err := viewstate.New(update.Identity, update.Parameters)
		if err != nil {
			return err
		}
		for name, value := range update.Fields {
			state.SetField(name, value)
		}
		_, err = c.LoadView(state)
		return err
	}

	if c.current == nil {
		if _, err := c.LoadView(nil); err != nil {
			return err
		}
	}
	if c.current == nil {
		return nil
	}
	for name, value := range update.Parameters {
		c.current.SetParameter(name, value)
	}
	for name, value := range update.Fields {
		c.current.SetField(name, value)
	}
	if len(update.Parameters) > 0 || len(update.Fields) > 0 {
		// the active instance was constructed from the old values; force a
		// rebuild on the next pass
		c.activeFor = nil
	}
	return nil
}

func (c *Controller) resolveIdentity(name string) (viewstate.Identity, bool) {
	entry, ok := c.registry.Resolve(name)
	if !ok {
		return nil, false
	}
	return entry, true
}

func (c *Controller) defaultState() *viewstate.ViewState {
	if c.defaultView == "" {
		return nil
	}
	entry, ok := c.registry.Resolve(c.defaultView)
	if !ok {
		return nil
	}
	state, err := viewstate.New(entry, nil)
	if err != nil {
		return nil
	}
	return state
}

// ActiveView is the constructed instance for the current state, or nil.
func (c *Controller) ActiveView() common.View {
	c.ensureActiveView()
	return c.activeView
}

// ensureActiveView constructs the view for the current state if the state
// changed since the last construction. Returns the new view's Init command
// on a fresh construction.
func (c *Controller) ensureActiveView() tea.Cmd {
	if c.current == nil {
		c.activeView, c.activeErr, c.activeFor = nil, nil, nil
		return nil
	}
	if c.activeFor == c.current {
		return nil
	}
	c.activeFor = c.current
	c.activeView, c.activeErr = c.current.Identity().Construct(c.current)
	if c.activeErr != nil {
		c.activeView = nil
		return nil
	}
	return c.activeView.Init()
}

// Update is the controller's message boundary: navigation messages mutate
// state here, input goes to the modal when one is up, everything else
// reaches the active view.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case LoadViewMsg:
		if _, err := c.LoadView(msg.State); err != nil {
			log.Printf("viewman: load view: %v", err)
			return nil
		}
		return c.ensureActiveView()
	case BackMsg:
		c.Back()
		return c.ensureActiveView()
	case RestoreMsg:
		if err := c.RestoreFromQueryString(msg.Raw); err != nil {
			log.Printf("viewman: restore %q: %v", msg.Raw, err)
			return nil
		}
		return c.ensureActiveView()
	case modal.ResultMsg:
		// the view that raised the modal observes the result
		if view := c.ActiveView(); view != nil {
			return view.Update(msg)
		}
		return nil
	}

	if c.modalHost != nil {
		if _, isKey := msg.(tea.KeyMsg); isKey && c.modalHost.Active() {
			return c.modalHost.Update(msg)
		}
		if cmd := c.modalHost.Update(msg); cmd != nil {
			return cmd
		}
	}

	if view := c.ActiveView(); view != nil {
		return view.Update(msg)
	}
	return nil
}
