package modal

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shauncurtis/viewman/internal/ui/common"
	"github.com/shauncurtis/viewman/internal/ui/viewstate"
)

type staticView struct {
	content string
}

func (v staticView) Init() tea.Cmd          { return nil }
func (v staticView) Update(tea.Msg) tea.Cmd { return nil }
func (v staticView) View(_, _ int) string   { return v.content }

type staticIdentity struct {
	name string
	err  error
}

func (i staticIdentity) Name() string { return i.name }

func (i staticIdentity) Construct(*viewstate.ViewState) (common.View, error) {
	if i.err != nil {
		return nil, i.err
	}
	return staticView{content: i.name}, nil
}

// drain runs a command chain until a terminal message is produced.
func drain(t *testing.T, h *Host, cmd tea.Cmd) tea.Msg {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return nil
		}
		if result, ok := msg.(ResultMsg); ok {
			return result
		}
		cmd = h.Update(msg)
	}
	return nil
}

func TestShow_PresentsConstructedComponent(t *testing.T) {
	h := NewHost()

	cmd := h.Show(staticIdentity{name: "details"}, WithTitle("Details"))
	require.NotNil(t, cmd)
	h.Update(cmd())

	assert.True(t, h.Active())
	assert.Contains(t, h.View(40, 10), "details")
	assert.Contains(t, h.View(40, 10), "Details")
}

func TestShow_ConstructionFailureYieldsErrorResult(t *testing.T) {
	h := NewHost()
	boom := errors.New("boom")

	msg := drain(t, h, h.Show(staticIdentity{name: "broken", err: boom}))

	result, ok := msg.(ResultMsg)
	require.True(t, ok)
	assert.ErrorIs(t, result.Err, boom)
	assert.False(t, h.Active())
}

func TestClose_DeliversResultAndClearsSlot(t *testing.T) {
	h := NewHost()
	h.Update(h.Show(staticIdentity{name: "picker"})())
	require.True(t, h.Active())

	msg := drain(t, h, Close("picked"))

	result, ok := msg.(ResultMsg)
	require.True(t, ok)
	assert.Equal(t, "picked", result.Value)
	assert.False(t, result.Canceled)
	assert.False(t, h.Active())
}

func TestCancel_DeliversCanceledResult(t *testing.T) {
	h := NewHost()
	h.Update(h.Show(staticIdentity{name: "picker"})())

	msg := drain(t, h, Cancel())

	result, ok := msg.(ResultMsg)
	require.True(t, ok)
	assert.True(t, result.Canceled)
}

func TestUpdate_CloseOverlayCancelsActiveModal(t *testing.T) {
	h := NewHost()
	h.Update(h.Show(staticIdentity{name: "picker"})())

	msg := drain(t, h, h.Update(common.CloseOverlayMsg{}))

	result, ok := msg.(ResultMsg)
	require.True(t, ok)
	assert.True(t, result.Canceled)
	assert.False(t, h.Active())
}

func TestView_EmptyWhenInactive(t *testing.T) {
	h := NewHost()
	assert.Empty(t, h.View(80, 24))
}

func TestUpdate_ForwardsMessagesToActiveContent(t *testing.T) {
	h := NewHost()
	confirm := NewConfirm("Discard changes?",
		WithChoice("Yes", "yes", keyBinding("y")),
		WithChoice("No", "no", keyBinding("n")),
	)
	h.Update(h.ShowView(confirm, WithTitle("Confirm"))())

	msg := drain(t, h, h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}))

	result, ok := msg.(ResultMsg)
	require.True(t, ok)
	assert.Equal(t, "yes", result.Value)
}
