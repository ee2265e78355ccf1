// Package viewstate holds the unit of navigation state: which view is
// displayed, with what parameters and fields.
package viewstate

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shauncurtis/viewman/internal/ui/common"
)

// ErrNilIdentity is returned when a ViewState is constructed without a view
// identity. This is a programming error, not a navigation failure.
var ErrNilIdentity = errors.New("viewstate: identity must not be nil")

// Identity names a view and constructs it. Identities come from the
// registry's registration table; nothing is resolved by reflection.
type Identity interface {
	Name() string
	Construct(state *ViewState) (common.View, error)
}

// ViewState names the current view and carries its parameter and field
// values. The identity is fixed for the life of the state; parameters are
// supplied at construction and passed to the view as inputs, fields hold
// cross-component state scoped to this view instance.
type ViewState struct {
	identity   Identity
	id         string
	parameters map[string]any
	fields     map[string]any
}

// New creates a ViewState for the given identity. The parameters map may be
// nil. Fails if identity is nil.
func New(identity Identity, parameters map[string]any) (*ViewState, error) {
	if identity == nil {
		return nil, ErrNilIdentity
	}
	params := make(map[string]any, len(parameters))
	for k, v := range parameters {
		params[k] = v
	}
	return &ViewState{
		identity:   identity,
		id:         uuid.NewString(),
		parameters: params,
		fields:     make(map[string]any),
	}, nil
}

func (s *ViewState) Identity() Identity {
	return s.identity
}

// ID is a unique handle for this state instance, used in debug logs.
func (s *ViewState) ID() string {
	return s.id
}

// SetParameter overrides a view input after construction. Intended for
// exceptional use; parameters are normally fixed at construction.
func (s *ViewState) SetParameter(name string, value any) {
	s.parameters[name] = value
}

func (s *ViewState) Parameter(name string) (any, bool) {
	v, ok := s.parameters[name]
	return v, ok
}

// Parameters returns a copy of the parameter map, for passing to the view.
func (s *ViewState) Parameters() map[string]any {
	params := make(map[string]any, len(s.parameters))
	for k, v := range s.parameters {
		params[k] = v
	}
	return params
}

func (s *ViewState) SetField(name string, value any) {
	s.fields[name] = value
}

func (s *ViewState) Field(name string) (any, bool) {
	v, ok := s.fields[name]
	return v, ok
}

func (s *ViewState) String() string {
	return fmt.Sprintf("%s (%s)", s.identity.Name(), s.id)
}
