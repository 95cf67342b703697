package menubar

import (
	"log/slog"

	"github.com/watchfire-io/menubar/internal/anchor"
)

// Menu identifies one of the bar's overlay menus.
type Menu int

// Overlay menus hosted by the bar.
const (
	SystemMenu Menu = iota
	NetworkMenu
	ControlCenter
)

// Menus lists the overlay menus in mount order.
func Menus() []Menu {
	return []Menu{SystemMenu, NetworkMenu, ControlCenter}
}

func (m Menu) String() string {
	switch m {
	case SystemMenu:
		return "system"
	case NetworkMenu:
		return "network"
	case ControlCenter:
		return "control-center"
	}
	return "unknown"
}

// Trigger returns the bar element that opens the menu.
func (m Menu) Trigger() anchor.Trigger {
	switch m {
	case NetworkMenu:
		return anchor.Network
	case ControlCenter:
		return anchor.ControlCenter
	}
	return anchor.System
}

// Visibility holds one independent open flag per menu. Any combination is
// valid; opening one menu never closes another.
type Visibility struct {
	System  bool
	Network bool
	Control bool
}

// Open reports whether m is visible.
func (v Visibility) Open(m Menu) bool {
	switch m {
	case SystemMenu:
		return v.System
	case NetworkMenu:
		return v.Network
	case ControlCenter:
		return v.Control
	}
	return false
}

func (v *Visibility) flag(m Menu) *bool {
	switch m {
	case SystemMenu:
		return &v.System
	case NetworkMenu:
		return &v.Network
	case ControlCenter:
		return &v.Control
	}
	return nil
}

// Event is the UI event that triggered a power action. It is passed to the
// power callback unchanged.
type Event = any

// PowerFunc is an externally supplied power transition.
type PowerFunc func(Event)

// PowerActions are the simulated power transitions offered by the system menu.
type PowerActions struct {
	LogOut   PowerFunc
	ShutDown PowerFunc
	Restart  PowerFunc
	Sleep    PowerFunc
}

// PowerAction names a power transition.
type PowerAction int

// Power transitions.
const (
	ActionLogOut PowerAction = iota
	ActionShutDown
	ActionRestart
	ActionSleep
)

func (a PowerAction) String() string {
	switch a {
	case ActionLogOut:
		return "log-out"
	case ActionShutDown:
		return "shut-down"
	case ActionRestart:
		return "restart"
	case ActionSleep:
		return "sleep"
	}
	return "unknown"
}

// Pauser stops audio playback synchronously.
type Pauser interface {
	Pause() (wasPlaying bool)
}

// Mount describes an overlay that should be on screen.
type Mount struct {
	Menu   Menu
	Anchor *anchor.Handle
	Close  func()
}

// Controller owns the menu visibility flags and the power action path.
type Controller struct {
	vis     Visibility
	anchors *anchor.Registry
	audio   Pauser
	power   PowerActions
}

// NewController creates a controller with every menu closed.
func NewController(anchors *anchor.Registry, audio Pauser, power PowerActions) *Controller {
	return &Controller{anchors: anchors, audio: audio, power: power}
}

// ToggleSystemMenu flips the system menu flag only.
func (c *Controller) ToggleSystemMenu() { c.Toggle(SystemMenu) }

// ToggleNetworkMenu flips the network menu flag only.
func (c *Controller) ToggleNetworkMenu() { c.Toggle(NetworkMenu) }

// ToggleControlCenter flips the control center flag only.
func (c *Controller) ToggleControlCenter() { c.Toggle(ControlCenter) }

// Toggle flips the flag of m and leaves the others untouched.
func (c *Controller) Toggle(m Menu) {
	f := c.vis.flag(m)
	if f == nil {
		return
	}
	*f = !*f
	slog.Debug("menu toggled", slog.String("menu", m.String()), slog.Bool("open", *f))
}

// Close clears the flag of m.
func (c *Controller) Close(m Menu) {
	if f := c.vis.flag(m); f != nil {
		*f = false
	}
}

// Visibility returns the current flags.
func (c *Controller) Visibility() Visibility {
	return c.vis
}

// Overlays lists the menus to mount, each with its own trigger's anchor and
// a close callback for that same menu.
func (c *Controller) Overlays() []Mount {
	var mounts []Mount
	for _, m := range Menus() {
		if !c.vis.Open(m) {
			continue
		}
		var h *anchor.Handle
		if c.anchors != nil {
			h = c.anchors.Handle(m.Trigger())
		}
		menu := m
		mounts = append(mounts, Mount{
			Menu:   menu,
			Anchor: h,
			Close:  func() { c.Close(menu) },
		})
	}
	return mounts
}

// LogOut pauses audio, then forwards ev to the log out callback.
func (c *Controller) LogOut(ev Event) { c.Power(ActionLogOut, ev) }

// ShutDown pauses audio, then forwards ev to the shut down callback.
func (c *Controller) ShutDown(ev Event) { c.Power(ActionShutDown, ev) }

// Restart pauses audio, then forwards ev to the restart callback.
func (c *Controller) Restart(ev Event) { c.Power(ActionRestart, ev) }

// Sleep pauses audio, then forwards ev to the sleep callback.
func (c *Controller) Sleep(ev Event) { c.Power(ActionSleep, ev) }

// Power runs a power transition. Audio is paused before the callback runs.
func (c *Controller) Power(action PowerAction, ev Event) {
	if c.audio != nil {
		c.audio.Pause()
	}
	slog.Info("power action", slog.String("action", action.String()))

	var fn PowerFunc
	switch action {
	case ActionLogOut:
		fn = c.power.LogOut
	case ActionShutDown:
		fn = c.power.ShutDown
	case ActionRestart:
		fn = c.power.Restart
	case ActionSleep:
		fn = c.power.Sleep
	}
	if fn != nil {
		fn(ev)
	}
}
