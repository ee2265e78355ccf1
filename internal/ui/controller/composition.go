package controller

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/shauncurtis/viewman/internal/ui/common"
	"github.com/shauncurtis/viewman/internal/ui/layouts"
	"github.com/shauncurtis/viewman/internal/ui/modal"
)

// Composition describes what to draw next: the modal slot, the resolved
// layout, and either the active view or a fallback marker. It is transient,
// rebuilt on every render pass, never persisted.
type Composition struct {
	// Layout is nil when no layout could be resolved; the composition is
	// then the fallback content alone.
	Layout layouts.Layout
	// View is the active view instance; nil when Fallback is set.
	View common.View
	// Fallback marks that the view could not be displayed. The failure is
	// not fatal to the controller, it is a presentation substitute.
	Fallback bool
	// Reason is retained for logging; never shown raw to the user beyond
	// the fallback content.
	Reason error
	// Modal is the always-present modal slot, nil only before binding.
	Modal *modal.Host
}

// BuildComposition is a pure read of controller state: called twice with no
// mutation in between it yields an equivalent composition.
func (c *Controller) BuildComposition() Composition {
	comp := Composition{Modal: c.modalHost}

	if c.current == nil {
		comp.Fallback = true
		comp.Reason = ErrNoCurrentView
		return comp
	}
	c.ensureActiveView()

	layoutName := c.defaultLayout
	if entry, ok := c.registry.Resolve(c.current.Identity().Name()); ok && entry.LayoutName() != "" {
		layoutName = entry.LayoutName()
	}
	if layout, ok := c.layouts.Resolve(layoutName); ok {
		comp.Layout = layout
	}
	if comp.Layout == nil {
		comp.Fallback = true
		comp.Reason = fmt.Errorf("no layout %q for view %q", layoutName, c.current.Identity().Name())
		return comp
	}

	if c.activeErr != nil {
		comp.Fallback = true
		comp.Reason = c.activeErr
		return comp
	}
	comp.View = c.activeView
	return comp
}

// Render paints the composition into the given area: layout-wrapped view or
// fallback content, with the modal box overlaid when one is up.
func (comp Composition) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	var base string
	if comp.Layout == nil {
		base = fallbackContent(width, height)
	} else {
		child := func(w, h int) string {
			if comp.Fallback {
				return fallbackContent(w, h)
			}
			return comp.View.View(w, h)
		}
		base = comp.Layout.Render(child, width, height)
	}

	if comp.Modal != nil && comp.Modal.Active() {
		box := comp.Modal.View(width, height)
		if box != "" {
			base = overlayCenter(base, box, width, height)
		}
	}
	return base
}

func fallbackContent(width, height int) string {
	style := common.DefaultPalette.Get("fallback text")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		style.Render("This content failed to display."))
}
