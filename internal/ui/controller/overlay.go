package controller

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// overlayCenter composites the foreground block over the center of the
// background, preserving the background around it. ANSI-aware: styled
// background lines are cut at cell boundaries.
func overlayCenter(background, foreground string, width, height int) string {
	fgLines := strings.Split(foreground, "\n")
	fgWidth := lipgloss.Width(foreground)
	fgHeight := len(fgLines)

	x := (width - fgWidth) / 2
	if x < 0 {
		x = 0
	}
	y := (height - fgHeight) / 2
	if y < 0 {
		y = 0
	}

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < y+fgHeight {
		bgLines = append(bgLines, "")
	}

	for i, fgLine := range fgLines {
		row := y + i
		bgLine := bgLines[row]
		left := ansi.Truncate(bgLine, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(bgLine, x+fgWidth, "")
		bgLines[row] = left + fgLine + right
	}
	return strings.Join(bgLines, "\n")
}
