// Package deeplink decodes the query-string form of a navigation state:
//
//	?Class=<view>(&Param-<name>=<value>)*(&Field-<name>=<value>)*
//
// A deep link is permissive by design: unresolvable view names and unknown
// keys are ignored so a stale bookmark degrades to the default view instead
// of failing the application.
package deeplink

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shauncurtis/viewman/internal/ui/viewstate"
)

const (
	classKey    = "Class"
	paramPrefix = "Param-"
	fieldPrefix = "Field-"
)

// Resolver maps a view name to its identity. Passed in explicitly; the
// codec holds no registry reference of its own.
type Resolver func(name string) (viewstate.Identity, bool)

// Update is what a decoded deep link asks the controller to apply.
type Update struct {
	// Identity is nil when the link names no view, or names one the
	// resolver does not know.
	Identity   viewstate.Identity
	Parameters map[string]any
	Fields     map[string]string
}

// Empty reports whether the link carried nothing applicable.
func (u Update) Empty() bool {
	return u.Identity == nil && len(u.Parameters) == 0 && len(u.Fields) == 0
}

// Decode parses a raw query string. Pure: no controller state is touched,
// the caller applies the returned update.
func Decode(raw string, resolve Resolver) Update {
	update := Update{
		Parameters: make(map[string]any),
		Fields:     make(map[string]string),
	}

	raw = strings.TrimPrefix(raw, "?")
	// ParseQuery fills values for every pair it could read before failing,
	// so a partially broken link still applies what it can.
	values, _ := url.ParseQuery(raw)

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		value := vals[0]
		switch {
		case key == classKey:
			if resolve == nil {
				continue
			}
			if identity, ok := resolve(value); ok {
				update.Identity = identity
			}
		case strings.HasPrefix(key, paramPrefix):
			name := strings.TrimPrefix(key, paramPrefix)
			if name == "" {
				continue
			}
			update.Parameters[name] = coerce(value)
		case strings.HasPrefix(key, fieldPrefix):
			name := strings.TrimPrefix(key, fieldPrefix)
			if name == "" {
				continue
			}
			update.Fields[name] = value
		}
	}
	return update
}

// coerce attempts integer, then decimal, then falls back to the raw string.
// First successful parse wins.
func coerce(value string) any {
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
