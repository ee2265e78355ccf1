package common

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shauncurtis/viewman/internal/config"
)

var DefaultPalette = NewPalette()

type node struct {
	style    lipgloss.Style
	children map[string]*node
}

// Palette resolves named styles configured by the user. Selectors are
// space-separated paths ("modal border", "navlink active") and inherit from
// less specific entries.
type Palette struct {
	root  *node
	cache map[string]lipgloss.Style
}

func NewPalette() *Palette {
	return &Palette{
		cache: make(map[string]lipgloss.Style),
	}
}

func (p *Palette) add(key string, style lipgloss.Style) {
	if p.root == nil {
		p.root = &node{children: make(map[string]*node)}
	}
	current := p.root
	for _, prefix := range strings.Fields(key) {
		child, ok := current.children[prefix]
		if !ok {
			child = &node{children: make(map[string]*node)}
			current.children[prefix] = child
		}
		current = child
	}
	current.style = style
}

func (p *Palette) get(fields ...string) lipgloss.Style {
	if p.root == nil {
		return lipgloss.NewStyle()
	}
	current := p.root
	for _, field := range fields {
		child, ok := current.children[field]
		if !ok {
			return lipgloss.NewStyle()
		}
		current = child
	}
	return current.style
}

func (p *Palette) Update(styleMap map[string]config.Color) {
	for key, color := range styleMap {
		p.add(key, createStyleFrom(color))
	}
	p.cache = make(map[string]lipgloss.Style)
}

// Get resolves a selector like "a b c" by inheriting from the most specific
// match to the least specific: "a b c", "a b", "a", then "b c", "b", then "c".
func (p *Palette) Get(selector string) lipgloss.Style {
	if style, ok := p.cache[selector]; ok {
		return style
	}
	fields := strings.Fields(selector)
	length := len(fields)

	finalStyle := lipgloss.NewStyle()
	start := 0
	for start < length {
		for end := length; end > start; end-- {
			finalStyle = finalStyle.Inherit(p.get(fields[start:end]...))
		}
		start++
	}
	p.cache[selector] = finalStyle
	return finalStyle
}

func (p *Palette) GetBorder(selector string, border lipgloss.Border) lipgloss.Style {
	style := p.Get(selector)
	return lipgloss.NewStyle().
		Border(border).
		Foreground(style.GetForeground()).
		Background(style.GetBackground()).
		BorderForeground(style.GetForeground()).
		BorderBackground(style.GetBackground())
}

func createStyleFrom(color config.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if color.Fg != "" {
		style = style.Foreground(parseColor(color.Fg))
	}
	if color.Bg != "" {
		style = style.Background(parseColor(color.Bg))
	}
	if color.Bold != nil {
		style = style.Bold(*color.Bold)
	}
	if color.Italic != nil {
		style = style.Italic(*color.Italic)
	}
	if color.Underline != nil {
		style = style.Underline(*color.Underline)
	}
	if color.Reverse != nil {
		style = style.Reverse(*color.Reverse)
	}
	return style
}

var namedColors = map[string]string{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"bright black":   "8",
	"bright red":     "9",
	"bright green":   "10",
	"bright yellow":  "11",
	"bright blue":    "12",
	"bright magenta": "13",
	"bright cyan":    "14",
	"bright white":   "15",
}

func parseColor(c string) lipgloss.TerminalColor {
	if len(c) == 7 && c[0] == '#' {
		return lipgloss.Color(c)
	}
	if v, err := strconv.Atoi(c); err == nil && v >= 0 && v <= 255 {
		return lipgloss.Color(c)
	}
	if code, ok := namedColors[c]; ok {
		return lipgloss.Color(code)
	}
	return lipgloss.NoColor{}
}
