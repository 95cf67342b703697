package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Top bar styles.
var (
	barStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "252", Dark: "236"})

	barHiddenStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Background(lipgloss.AdaptiveColor{Light: "254", Dark: "234"})

	barTitleStyle = lipgloss.NewStyle().Bold(true)

	triggerStyle = lipgloss.NewStyle().Padding(0, 1)

	triggerActiveStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(lipgloss.AdaptiveColor{Light: "249", Dark: "240"})
)

// Status bar styles.
var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	keyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	hintStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// Overlay styles.
var (
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWhite).
			Padding(1, 2)

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				MarginBottom(1)

	overlayDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	menuItemStyle = lipgloss.NewStyle().Foreground(colorWhite)

	menuCursorStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})

	menuSeparatorStyle = lipgloss.NewStyle().Foreground(colorDim)

	toggleOnStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	toggleOffStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// Power screen styles.
var (
	lockClockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	lockHintStyle = lipgloss.NewStyle().Foreground(colorDim)

	sleepStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("0"))
)

// wallpaperStyle tints the desktop by brightness. Brightness maps onto the
// 24-step xterm grey ramp; values outside 0..100 are clamped for display only.
func wallpaperStyle(brightness int) lipgloss.Style {
	b := min(max(brightness, 0), 100)
	grey := 232 + b*23/100
	return lipgloss.NewStyle().Background(lipgloss.Color(fmt.Sprintf("%d", grey)))
}
