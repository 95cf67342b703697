package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/watchfire-io/menubar/internal/audio"
	"github.com/watchfire-io/menubar/internal/store"
)

// sliderStep is how far one ←/→ press moves a slider.
const sliderStep = 10

// Control center rows.
const (
	ccWifi = iota
	ccPlayback
	ccVolume
	ccBrightness
	ccRows
)

// ControlCenter renders the control center dropdown. Sliders write through
// the audio bridge so volume reaches the engine with the store update.
type ControlCenter struct {
	cursor     int
	volume     progress.Model
	brightness progress.Model
}

// NewControlCenter creates the dropdown.
func NewControlCenter() *ControlCenter {
	newBar := func() progress.Model {
		return progress.New(
			progress.WithDefaultGradient(),
			progress.WithoutPercentage(),
			progress.WithWidth(24),
		)
	}
	return &ControlCenter{volume: newBar(), brightness: newBar()}
}

func ccRowID(row int) string {
	return fmt.Sprintf("item-control-center-%d", row)
}

// step moves a slider value by delta within the slider's 0..100 range.
func step(value, delta int) int {
	return min(max(value+delta, 0), 100)
}

func (c *ControlCenter) activate(st *store.Store, bridge *audio.Bridge, row int) {
	switch row {
	case ccWifi:
		st.Dispatch(store.ToggleWifi{})
	case ccPlayback:
		bridge.Toggle()
	}
}

func (c *ControlCenter) adjust(st *store.Store, bridge *audio.Bridge, delta int) {
	s := st.Get()
	switch c.cursor {
	case ccVolume:
		bridge.SetVolume(step(s.Volume, delta))
	case ccBrightness:
		bridge.SetBrightness(step(s.Brightness, delta))
	}
}

// HandleKey processes keys while the control center has focus.
func (c *ControlCenter) HandleKey(st *store.Store, bridge *audio.Bridge, msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, menuKeys.Up):
		c.cursor = (c.cursor + ccRows - 1) % ccRows
	case key.Matches(msg, menuKeys.Down):
		c.cursor = (c.cursor + 1) % ccRows
	case key.Matches(msg, menuKeys.Select):
		c.activate(st, bridge, c.cursor)
	case key.Matches(msg, sliderKeys.Decrease):
		c.adjust(st, bridge, -sliderStep)
	case key.Matches(msg, sliderKeys.Increase):
		c.adjust(st, bridge, sliderStep)
	}
}

// HandleClick activates the row under the pointer. Clicking a slider
// focuses it. It reports whether the click landed on a row.
func (c *ControlCenter) HandleClick(zones *zone.Manager, st *store.Store, bridge *audio.Bridge, msg tea.MouseMsg) bool {
	if zones == nil {
		return false
	}
	for row := 0; row < ccRows; row++ {
		if !hit(zones, ccRowID(row), msg) {
			continue
		}
		c.cursor = row
		c.activate(st, bridge, row)
		return true
	}
	return false
}

func percent(v int) float64 {
	return float64(min(max(v, 0), 100)) / 100
}

// View renders the dropdown for the current store and playback state.
func (c *ControlCenter) View(zones *zone.Manager, s store.State, playback audio.PlaybackState) string {
	play := "▶ Play"
	if playback.Playing {
		play = "❚❚ Pause"
	}
	full := overlayDimStyle.Render("windowed")
	if s.Fullscreen {
		full = toggleOnStyle.Render("fullscreen")
	}

	rows := []string{
		fmt.Sprintf("Wi-Fi        %s", renderToggle(s.Wifi)),
		fmt.Sprintf("Music        %s", play),
		fmt.Sprintf("Sound  %4d%% %s", s.Volume, c.volume.ViewAs(percent(s.Volume))),
		fmt.Sprintf("Display%4d%% %s", s.Brightness, c.brightness.ViewAs(percent(s.Brightness))),
	}
	for i, row := range rows {
		style := menuItemStyle
		if i == c.cursor {
			style = menuCursorStyle
		}
		row = style.Render(" " + row + " ")
		if zones != nil {
			row = zones.Mark(ccRowID(i), row)
		}
		rows[i] = row
	}

	body := overlayTitleStyle.Render("Control Center") + "\n" +
		strings.Join(rows, "\n") + "\n\n" +
		overlayDimStyle.Render("Window ") + full
	return menuStyle.Render(body)
}
