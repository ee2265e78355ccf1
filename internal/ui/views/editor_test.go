package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shauncurtis/viewman/internal/ui/common"
	"github.com/shauncurtis/viewman/internal/ui/modal"
)

type fakeGuard struct {
	locked bool
}

func (g *fakeGuard) Lock()          { g.locked = true }
func (g *fakeGuard) Unlock()        { g.locked = false }
func (g *fakeGuard) IsLocked() bool { return g.locked }

type fakeOpener struct {
	shown []common.View
}

func (o *fakeOpener) ShowModalView(view common.View, opts ...modal.Option) (tea.Cmd, error) {
	o.shown = append(o.shown, view)
	return func() tea.Msg { return nil }, nil
}

func newEditor(t *testing.T) (*Editor, *fakeGuard, *fakeOpener) {
	t.Helper()
	guard := &fakeGuard{}
	opener := &fakeOpener{}
	e := NewEditor(newState(t, "editor", nil), guard, opener)
	e.Init()
	return e, guard, opener
}

func typeRunes(e *Editor, s string) {
	for _, r := range s {
		e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestEditor_FirstEditLocksNavigation(t *testing.T) {
	e, guard, _ := newEditor(t)
	require.False(t, guard.locked)

	typeRunes(e, "h")

	assert.True(t, e.dirty)
	assert.True(t, guard.locked)
	assert.Contains(t, e.View(80, 20), "unsaved")
}

func TestEditor_SaveUnlocksAndStoresDraftField(t *testing.T) {
	e, guard, _ := newEditor(t)
	typeRunes(e, "hello")

	e.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.False(t, e.dirty)
	assert.False(t, guard.locked)
	draft, ok := e.state.Field("Draft")
	require.True(t, ok)
	assert.Equal(t, "hello", draft)
}

func TestEditor_DraftFieldSeedsInput(t *testing.T) {
	state := newState(t, "editor", nil)
	state.SetField("Draft", "restored text")

	e := NewEditor(state, &fakeGuard{}, &fakeOpener{})

	assert.Equal(t, "restored text", e.input.Value())
	assert.False(t, e.dirty)
}

func TestEditor_EscWhileDirtyRaisesConfirm(t *testing.T) {
	e, _, opener := newEditor(t)
	typeRunes(e, "x")

	cmd := e.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.NotNil(t, cmd)
	require.Len(t, opener.shown, 1)
	assert.IsType(t, &modal.Confirm{}, opener.shown[0])
}

func TestEditor_EscWhileCleanBlursInput(t *testing.T) {
	e, _, opener := newEditor(t)
	require.True(t, e.IsFocused())

	cmd := e.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.Empty(t, opener.shown)
	assert.False(t, e.IsFocused())
	assert.Contains(t, e.View(80, 20), "i to edit")
}

func TestEditor_BlurredInputIgnoresTypingUntilRefocus(t *testing.T) {
	e, guard, _ := newEditor(t)
	e.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, e.IsFocused())

	typeRunes(e, "q")
	assert.Empty(t, e.input.Value())
	assert.False(t, guard.locked)

	e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	require.True(t, e.IsFocused())

	typeRunes(e, "hi")
	assert.Equal(t, "hi", e.input.Value())
}

func TestEditor_DiscardResultRevertsAndUnlocks(t *testing.T) {
	e, guard, _ := newEditor(t)
	typeRunes(e, "hello")
	e.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	typeRunes(e, " world")
	require.True(t, guard.locked)

	e.Update(modal.ResultMsg{Value: "discard"})

	assert.Equal(t, "hello", e.input.Value())
	assert.False(t, e.dirty)
	assert.False(t, guard.locked)
}

func TestEditor_SaveResultKeepsEditedText(t *testing.T) {
	e, guard, _ := newEditor(t)
	typeRunes(e, "hi")

	e.Update(modal.ResultMsg{Value: "save"})

	assert.Equal(t, "hi", e.input.Value())
	assert.False(t, guard.locked)
	draft, _ := e.state.Field("Draft")
	assert.Equal(t, "hi", draft)
}

func TestEditor_KeepEditingResultStaysLocked(t *testing.T) {
	e, guard, _ := newEditor(t)
	typeRunes(e, "hi")

	e.Update(modal.ResultMsg{Value: "keep"})

	assert.True(t, e.dirty)
	assert.True(t, guard.locked)
}

func TestEditor_CanceledResultStaysLocked(t *testing.T) {
	e, guard, _ := newEditor(t)
	typeRunes(e, "hi")

	e.Update(modal.ResultMsg{Canceled: true})

	assert.True(t, e.dirty)
	assert.True(t, guard.locked)
}
