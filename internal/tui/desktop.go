package tui

import (
	"log/slog"
	"time"

	"github.com/watchfire-io/menubar/internal/anchor"
	"github.com/watchfire-io/menubar/internal/menubar"
)

// bootDuration is how long the restart splash stays up.
const bootDuration = 2 * time.Second

// powerState is the simulated machine state around the desktop.
type powerState int

const (
	powerOn powerState = iota
	powerLocked
	powerAsleep
	powerBooting
	powerOff
)

func (s powerState) String() string {
	switch s {
	case powerOn:
		return "on"
	case powerLocked:
		return "locked"
	case powerAsleep:
		return "asleep"
	case powerBooting:
		return "booting"
	case powerOff:
		return "off"
	}
	return "unknown"
}

// desktop is the state the bar's callbacks write to. The callbacks run
// inside Update, so they only record what happened; the model acts on it
// once the bar call returns.
type desktop struct {
	state     powerState
	lastEvent menubar.Event

	searchOpen   bool
	searchAnchor *anchor.Handle
}

func (d *desktop) enter(state powerState, ev menubar.Event) {
	slog.Info("power state changed", slog.String("from", d.state.String()), slog.String("to", state.String()))
	d.state = state
	d.lastEvent = ev
}

func (d *desktop) powerActions() menubar.PowerActions {
	return menubar.PowerActions{
		LogOut:   func(ev menubar.Event) { d.enter(powerLocked, ev) },
		ShutDown: func(ev menubar.Event) { d.enter(powerOff, ev) },
		Restart:  func(ev menubar.Event) { d.enter(powerBooting, ev) },
		Sleep:    func(ev menubar.Event) { d.enter(powerAsleep, ev) },
	}
}

func (d *desktop) registerSearchAnchor(h *anchor.Handle) {
	d.searchAnchor = h
}

func (d *desktop) toggleSearch() {
	d.searchOpen = !d.searchOpen
}
