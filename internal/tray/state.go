// Package tray mirrors the menu bar's power items in the OS system tray.
package tray

import (
	"fmt"

	"github.com/watchfire-io/menubar/internal/menubar"
	"github.com/watchfire-io/menubar/internal/store"
)

// Options wires the tray to the running desktop.
type Options struct {
	Title string
	// OnPower receives clicked power items. It runs on the tray's click
	// goroutine and must not block.
	OnPower func(menubar.PowerAction)
	// OnQuit is called when the tray's own Quit item is clicked.
	OnQuit func()
	// Changes feeds the volume readout. May be nil.
	Changes <-chan store.Change
	// Initial is the state shown before the first change arrives.
	Initial store.State
}

// powerItems is the tray menu order, matching the system menu.
var powerItems = []menubar.PowerAction{
	menubar.ActionSleep,
	menubar.ActionRestart,
	menubar.ActionShutDown,
	menubar.ActionLogOut,
}

func formatTooltip(title string, s store.State) string {
	wifi := "off"
	if s.Wifi {
		wifi = "on"
	}
	return fmt.Sprintf("%s: volume %d%%, Wi-Fi %s", title, s.Volume, wifi)
}

func formatVolume(s store.State) string {
	return fmt.Sprintf("Volume: %d%%", s.Volume)
}
