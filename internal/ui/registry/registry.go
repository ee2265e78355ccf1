// Package registry is the explicit registration table mapping view names to
// factories and layouts. It is built at startup; there is no runtime type
// introspection anywhere in the navigation path.
package registry

import (
	"fmt"

	"github.com/sahilm/fuzzy"

	"github.com/shauncurtis/viewman/internal/ui/common"
	"github.com/shauncurtis/viewman/internal/ui/viewstate"
)

// Factory builds a view from its navigation state. A factory may fail; the
// controller recovers by rendering fallback content.
type Factory func(state *viewstate.ViewState) (common.View, error)

// Entry is a registered view identity.
type Entry struct {
	name    string
	factory Factory
	layout  string
}

var _ viewstate.Identity = (*Entry)(nil)

func (e *Entry) Name() string {
	return e.name
}

func (e *Entry) Construct(state *viewstate.ViewState) (common.View, error) {
	view, err := e.factory(state)
	if err != nil {
		return nil, fmt.Errorf("constructing view %q: %w", e.name, err)
	}
	return view, nil
}

// LayoutName is the layout this view declared at registration, or "".
func (e *Entry) LayoutName() string {
	return e.layout
}

type Option func(*Entry)

// WithLayout declares the layout wrapping this view, overriding the
// configured default.
func WithLayout(name string) Option {
	return func(e *Entry) {
		e.layout = name
	}
}

type Registry struct {
	entries map[string]*Entry
	order   []string
}

func New() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
	}
}

// Register adds a view identity. Registering the same name twice replaces
// the earlier entry.
func (r *Registry) Register(name string, factory Factory, opts ...Option) *Entry {
	entry := &Entry{name: name, factory: factory}
	for _, opt := range opts {
		opt(entry)
	}
	if _, exists := r.entries[name]; !exists {
		r.order = append(r.order, name)
	}
	r.entries[name] = entry
	return entry
}

// Resolve looks a view name up. Callers treat a miss as "keep what you
// have", not as an error; deep links degrade to the default view.
func (r *Registry) Resolve(name string) (*Entry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

// Names returns registered view names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Search fuzzy-matches registered view names. An empty term returns all
// names in registration order.
func (r *Registry) Search(term string) []string {
	if term == "" {
		return r.Names()
	}
	matches := fuzzy.Find(term, r.order)
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, match.Str)
	}
	return names
}
