package views

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shauncurtis/viewman/internal/ui/common"
	"github.com/shauncurtis/viewman/internal/ui/modal"
	"github.com/shauncurtis/viewman/internal/ui/viewstate"
)

// NavigationGuard is the slice of the controller the editor needs to hold
// navigation while a draft is dirty.
type NavigationGuard interface {
	Lock()
	Unlock()
	IsLocked() bool
}

// ModalOpener raises a pre-built component in the modal slot.
type ModalOpener interface {
	ShowModalView(view common.View, opts ...modal.Option) (tea.Cmd, error)
}

var (
	_ common.View      = (*Editor)(nil)
	_ common.Titled    = (*Editor)(nil)
	_ common.Focusable = (*Editor)(nil)
)

// Editor is a single-line draft editor. The first edit locks navigation;
// saving (ctrl+s) or discarding through the confirm dialog unlocks it. The
// saved text round-trips through the "Draft" field, so it appears in deep
// links to this view.
type Editor struct {
	state  *viewstate.ViewState
	input  textinput.Model
	guard  NavigationGuard
	opener ModalOpener
	saved  string
	dirty  bool
	status string
	styles editorStyles
}

type editorStyles struct {
	heading lipgloss.Style
	dirty   lipgloss.Style
	saved   lipgloss.Style
	dimmed  lipgloss.Style
}

func NewEditor(state *viewstate.ViewState, guard NavigationGuard, opener ModalOpener) *Editor {
	ti := textinput.New()
	ti.Prompt = "draft> "
	ti.CharLimit = 120
	ti.Width = 50
	if draft, ok := state.Field("Draft"); ok {
		if draft, ok := draft.(string); ok {
			ti.SetValue(draft)
		}
	}

	return &Editor{
		state:  state,
		input:  ti,
		guard:  guard,
		opener: opener,
		saved:  ti.Value(),
		styles: editorStyles{
			heading: common.DefaultPalette.Get("views heading"),
			dirty:   common.DefaultPalette.Get("views dirty"),
			saved:   common.DefaultPalette.Get("views saved"),
			dimmed:  common.DefaultPalette.Get("dimmed"),
		},
	}
}

func (e *Editor) Title() string {
	return "Editor"
}

// IsFocused reports whether the input is capturing keys. Esc with a clean
// draft blurs the input, handing plain letters back to the app shell.
func (e *Editor) IsFocused() bool {
	return e.input.Focused()
}

func (e *Editor) Init() tea.Cmd {
	return tea.Batch(e.input.Focus(), textinput.Blink)
}

func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case modal.ResultMsg:
		if msg.Canceled || msg.Err != nil {
			return nil
		}
		if choice, ok := msg.Value.(string); ok {
			return e.resolveDraft(choice)
		}
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			e.save()
			return nil
		case "esc":
			if e.dirty {
				return e.confirmDiscard()
			}
			e.input.Blur()
			return nil
		}
		if !e.input.Focused() {
			switch msg.String() {
			case "i", "enter":
				return e.input.Focus()
			}
			return nil
		}
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	if e.input.Value() != e.saved && !e.dirty {
		e.dirty = true
		e.status = ""
		e.guard.Lock()
	}
	return cmd
}

func (e *Editor) save() {
	e.saved = e.input.Value()
	e.state.SetField("Draft", e.saved)
	e.dirty = false
	e.status = "saved"
	e.guard.Unlock()
}

func (e *Editor) discard() {
	e.input.SetValue(e.saved)
	e.input.CursorEnd()
	e.dirty = false
	e.status = "discarded"
	e.guard.Unlock()
}

func (e *Editor) resolveDraft(choice string) tea.Cmd {
	switch choice {
	case "save":
		e.save()
	case "discard":
		e.discard()
	}
	return nil
}

func (e *Editor) confirmDiscard() tea.Cmd {
	dialog := modal.NewConfirm("You have unsaved changes.",
		modal.WithChoice("Save", "save", key.NewBinding(key.WithKeys("s"))),
		modal.WithChoice("Discard", "discard", key.NewBinding(key.WithKeys("d"))),
		modal.WithChoice("Keep editing", "keep", key.NewBinding(key.WithKeys("k"))),
	)
	cmd, err := e.opener.ShowModalView(dialog, modal.WithTitle("Unsaved changes"))
	if err != nil {
		log.Printf("viewman: editor confirm: %v", err)
		return nil
	}
	return cmd
}

func (e *Editor) View(width, height int) string {
	marker := e.styles.saved.Render("clean")
	if e.dirty {
		marker = e.styles.dirty.Render("unsaved")
	}
	hint := "ctrl+s save · esc discard dialog"
	if !e.input.Focused() {
		hint = "i to edit"
	}
	lines := []string{
		e.styles.heading.Render("Editor") + "  " + marker,
		"",
		e.input.View(),
		"",
		e.styles.dimmed.Render(hint),
	}
	if e.status != "" {
		lines = append(lines, e.styles.dimmed.Render(e.status))
	}
	return lipgloss.NewStyle().MaxWidth(width).MaxHeight(height).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}
