package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// padLines right-pads every line of s to width cells.
func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = padRight(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// fitLines returns exactly height lines of at least width cells, dropping
// overflow lines and filling the rest with blanks.
func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	src := strings.SplitN(s, "\n", height+1)
	blank := strings.Repeat(" ", width)
	out := make([]string, height)
	for i := range out {
		if i < len(src) {
			out[i] = padRight(src[i], width)
			continue
		}
		out[i] = blank
	}
	return strings.Join(out, "\n")
}

// padRight measures with lipgloss so styled text keeps its escape codes out
// of the count.
func padRight(line string, width int) string {
	if gap := width - lipgloss.Width(line); gap > 0 {
		return line + strings.Repeat(" ", gap)
	}
	return line
}

// truncateLine clips plain text to width cells, ending in an ellipsis when
// there is room for one.
func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	if width <= len(ellipsis) {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, ellipsis)
}
