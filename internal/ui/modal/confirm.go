package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shauncurtis/viewman/internal/ui/common"
)

// Confirm is a small option picker meant for the modal slot: a message and
// a row of labelled choices, each with its own key binding.
type Confirm struct {
	message  string
	options  []confirmOption
	selected int
	styles   confirmStyles
}

type confirmOption struct {
	label   string
	value   any
	binding key.Binding
}

type confirmStyles struct {
	text     lipgloss.Style
	selected lipgloss.Style
	dimmed   lipgloss.Style
}

type ConfirmOption func(*Confirm)

// WithChoice adds a labelled choice. Its value is delivered through the
// host's ResultMsg when picked.
func WithChoice(label string, value any, binding key.Binding) ConfirmOption {
	return func(c *Confirm) {
		c.options = append(c.options, confirmOption{label: label, value: value, binding: binding})
	}
}

func NewConfirm(message string, opts ...ConfirmOption) *Confirm {
	c := &Confirm{
		message: message,
		styles: confirmStyles{
			text:     common.DefaultPalette.Get("modal text"),
			selected: common.DefaultPalette.Get("modal selected").Padding(0, 2),
			dimmed:   common.DefaultPalette.Get("modal dimmed").Padding(0, 2),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Confirm) Init() tea.Cmd {
	return nil
}

func (c *Confirm) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	for _, option := range c.options {
		if key.Matches(keyMsg, option.binding) {
			return Close(option.value)
		}
	}
	switch keyMsg.String() {
	case "left", "h":
		c.move(-1)
	case "right", "l", "tab":
		c.move(1)
	case "enter":
		if len(c.options) == 0 {
			return Cancel()
		}
		return Close(c.options[c.selected].value)
	case "esc":
		return Cancel()
	}
	return nil
}

func (c *Confirm) move(delta int) {
	if len(c.options) == 0 {
		return
	}
	next := c.selected + delta
	if next < 0 {
		next = 0
	}
	if next >= len(c.options) {
		next = len(c.options) - 1
	}
	c.selected = next
}

func (c *Confirm) View(width, height int) string {
	var w strings.Builder
	w.WriteString(c.styles.text.Render(c.message))
	w.WriteString("\n\n")
	for i, option := range c.options {
		style := c.styles.dimmed
		if i == c.selected {
			style = c.styles.selected
		}
		w.WriteString(style.Render(option.label))
	}
	return w.String()
}
