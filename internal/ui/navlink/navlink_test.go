package navlink

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shauncurtis/viewman/internal/ui/common"
	"github.com/shauncurtis/viewman/internal/ui/controller"
	"github.com/shauncurtis/viewman/internal/ui/viewstate"
)

type fakeNav struct {
	current string
	locked  bool
}

func (f fakeNav) IsCurrentView(name string) bool { return f.current == name }
func (f fakeNav) IsLocked() bool                 { return f.locked }

type fakeIdentity struct {
	name string
}

func (f fakeIdentity) Name() string { return f.name }

func (f fakeIdentity) Construct(*viewstate.ViewState) (common.View, error) {
	return nil, nil
}

func binding(k string) key.Binding {
	return key.NewBinding(key.WithKeys(k))
}

func press(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestUpdate_MatchedKeyEmitsLoadView(t *testing.T) {
	m := New(fakeNav{},
		Link{Label: "Home", Target: fakeIdentity{name: "home"}, Binding: binding("g")},
		Link{Label: "Weather", Target: fakeIdentity{name: "weather"}, Parameters: map[string]any{"ID": 1}, Binding: binding("w")},
	)

	cmd := m.Update(press('w'))
	require.NotNil(t, cmd)

	msg, ok := cmd().(controller.LoadViewMsg)
	require.True(t, ok)
	assert.Equal(t, "weather", msg.State.Identity().Name())
	id, _ := msg.State.Parameter("ID")
	assert.Equal(t, 1, id)
}

func TestUpdate_FreshStatePerActivation(t *testing.T) {
	m := New(fakeNav{}, Link{Label: "Home", Target: fakeIdentity{name: "home"}, Binding: binding("g")})

	first := m.Update(press('g'))().(controller.LoadViewMsg)
	second := m.Update(press('g'))().(controller.LoadViewMsg)

	assert.NotSame(t, first.State, second.State)
}

func TestUpdate_UnmatchedKeyIsIgnored(t *testing.T) {
	m := New(fakeNav{}, Link{Label: "Home", Target: fakeIdentity{name: "home"}, Binding: binding("g")})

	assert.Nil(t, m.Update(press('z')))
	assert.Nil(t, m.Update(controller.BackMsg{}))
}

func TestView_MarksActiveLink(t *testing.T) {
	m := New(fakeNav{current: "weather"},
		Link{Label: "Home", Target: fakeIdentity{name: "home"}, Binding: binding("g")},
		Link{Label: "Weather", Target: fakeIdentity{name: "weather"}, Binding: binding("w")},
	)

	out := m.View(30, 10)

	assert.Contains(t, out, "> [w] Weather")
	assert.Contains(t, out, "  [g] Home")
}

func TestView_TruncatesToHeight(t *testing.T) {
	m := New(fakeNav{},
		Link{Label: "One", Target: fakeIdentity{name: "one"}, Binding: binding("1")},
		Link{Label: "Two", Target: fakeIdentity{name: "two"}, Binding: binding("2")},
		Link{Label: "Three", Target: fakeIdentity{name: "three"}, Binding: binding("3")},
	)

	out := m.View(30, 2)

	assert.Contains(t, out, "One")
	assert.Contains(t, out, "Two")
	assert.NotContains(t, out, "Three")
}
