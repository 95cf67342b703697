package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/menubar/internal/anchor"
	"github.com/watchfire-io/menubar/internal/clock"
	"github.com/watchfire-io/menubar/internal/menubar"
)

// Bar glyphs.
const (
	glyphSystem   = ""
	glyphWifiOn   = "▂▄▆"
	glyphWifiOff  = "▂ ✕"
	glyphSearch   = "⌕"
	glyphControl  = "☰"
	batteryStatus = "100% ▮"
)

// barView is what the top bar needs to draw one frame.
type barView struct {
	title      string
	hidden     bool
	wifi       bool
	now        time.Time
	open       menubar.Visibility
	searchOpen bool
	anchors    *anchor.Registry
}

func newBarView(bar *menubar.MenuBar, searchOpen bool) barView {
	return barView{
		title:      bar.Title(),
		hidden:     bar.Hidden(),
		wifi:       bar.State().Wifi,
		now:        bar.Clock.Now(),
		open:       bar.Controller.Visibility(),
		searchOpen: searchOpen,
		anchors:    bar.Anchors,
	}
}

func (v barView) trigger(t anchor.Trigger, glyph string, active bool) string {
	style := triggerStyle
	if active {
		style = triggerActiveStyle
	}
	var h *anchor.Handle
	if v.anchors != nil {
		h = v.anchors.Handle(t)
	}
	return h.Mark(style.Render(glyph))
}

func renderTopBar(v barView, width int) string {
	wifi := glyphWifiOff
	if v.wifi {
		wifi = glyphWifiOn
	}

	left := v.trigger(anchor.System, glyphSystem, v.open.System) + barTitleStyle.Render(v.title)

	right := strings.Join([]string{
		batteryStatus,
		v.trigger(anchor.Network, wifi, v.open.Network),
		v.trigger(anchor.Search, glyphSearch, v.searchOpen),
		v.trigger(anchor.ControlCenter, glyphControl, v.open.Control),
		clock.FormatDate(v.now),
		clock.FormatTime(v.now),
	}, " ") + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	style := barStyle
	if v.hidden {
		style = barHiddenStyle
	}
	return style.Width(width).MaxHeight(1).Render(left + strings.Repeat(" ", gap) + right)
}
