package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/watchfire-io/menubar/internal/anchor"
)

// renderOverlay renders an overlay centered on top of the base view.
func renderOverlay(base, overlayContent string, width, height int) string {
	// Dim the background
	baseLines := strings.Split(base, "\n")
	for i, line := range baseLines {
		baseLines[i] = overlayDimStyle.Render(line)
	}
	dimmed := strings.Join(baseLines, "\n")

	w, h := blockSize(overlayContent)
	top := max((height-h)/2, 1)
	left := max((width-w)/2, 1)

	return overlayAt(dimmed, overlayContent, left, top, width)
}

// placeUnder returns where an overlay of size w x h goes when it hangs from
// an anchor: the anchor's column, one row below it, kept on screen. Without
// usable bounds the overlay sits against the right edge under the bar.
func placeUnder(h *anchor.Handle, w, hgt, width, height int) (x, y int) {
	x, y = width-w, 1
	if r, ok := h.Bounds(); ok {
		x, y = r.X, r.Y+r.Height
	}
	x = min(x, width-w)
	y = min(y, height-hgt)
	return max(x, 0), max(y, 1)
}

// overlayAt composites overlay onto base with its top-left cell at (x, y).
// Rows past the base are dropped; the overlay is never wrapped.
func overlayAt(base, overlay string, x, y, width int) string {
	result := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")
	overlayWidth, _ := blockSize(overlay)

	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(result) {
			continue
		}
		bg := padRight(result[row], width)
		bgWidth := lipgloss.Width(bg)

		leftPart := ansi.Truncate(bg, x, "")
		rightPart := ""
		if rightStart := x + overlayWidth; rightStart < bgWidth {
			rightPart = ansi.Cut(bg, rightStart, bgWidth)
		}

		result[row] = leftPart + "\033[0m" + padRight(line, overlayWidth) + "\033[0m" + rightPart
	}

	return strings.Join(result, "\n")
}

func blockSize(s string) (w, h int) {
	lines := strings.Split(s, "\n")
	for _, l := range lines {
		w = max(w, lipgloss.Width(l))
	}
	return w, len(lines)
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
