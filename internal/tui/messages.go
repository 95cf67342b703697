package tui

import (
	"time"

	"github.com/watchfire-io/menubar/internal/menubar"
	"github.com/watchfire-io/menubar/internal/store"
	"github.com/watchfire-io/menubar/internal/watcher"
)

// ClockTickMsg carries a clock refresh from the bar's ticker.
type ClockTickMsg struct {
	Time time.Time
}

// StoreChangedMsg carries a store dispatch made outside the update loop.
type StoreChangedMsg struct {
	Change store.Change
}

// SettingsReloadedMsg carries settings re-read from disk.
type SettingsReloadedMsg struct {
	Reloaded watcher.Reloaded
}

// PowerMsg requests a power transition from outside the bar, e.g. the tray.
type PowerMsg struct {
	Action menubar.PowerAction
}

// QuitMsg closes the desktop.
type QuitMsg struct{}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}

// bootDoneMsg ends the restart splash.
type bootDoneMsg struct{}
