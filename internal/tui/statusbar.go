package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(m *Model, width int) string {
	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	left := " " + getKeyHints(m)

	s := m.store.Get()
	right := fmt.Sprintf("vol %d%%  bri %d%%", s.Volume, s.Brightness)
	if s.Fullscreen {
		right += "  " + lipgloss.NewStyle().Foreground(colorGreen).Render("⤢ full")
	}
	if m.lastChange != "" {
		right = hintStyle.Render(m.lastChange) + "  " + right
	}
	right += " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(width).MaxHeight(1).Render(left + strings.Repeat(" ", gap) + right)
}

func getKeyHints(m *Model) string {
	if m.showHelp || m.showAbout {
		return keyHint("Esc", "close")
	}

	top, ok := m.top()
	if !ok {
		return keyHint("F1", "menu") + "  " + keyHint("F2", "wi-fi") + "  " +
			keyHint("F3", "control") + "  " + keyHint("^Space", "search") + "  " +
			keyHint("Ctrl+h", "help") + "  " + keyHint("Ctrl+q", "quit")
	}

	switch top {
	case focusControl:
		return keyHint("↑/↓", "row") + "  " + keyHint("←/→", "adjust") + "  " +
			keyHint("Enter", "toggle") + "  " + keyHint("Esc", "close")
	case focusSearch:
		return keyHint("", "type to search") + "  " + keyHint("Enter", "run") + "  " + keyHint("Esc", "close")
	}
	return keyHint("↑/↓", "navigate") + "  " + keyHint("Enter", "select") + "  " + keyHint("Esc", "close")
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		MaxHeight(1).
		Render(" " + msg)
}
