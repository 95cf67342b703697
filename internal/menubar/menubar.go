// Package menubar coordinates the top bar's overlay menus, clock, audio and
// fullscreen state over an explicit mount/teardown lifecycle.
package menubar

import (
	"log/slog"
	"time"

	zone "github.com/lrstanley/bubblezone"

	"github.com/watchfire-io/menubar/internal/anchor"
	"github.com/watchfire-io/menubar/internal/audio"
	"github.com/watchfire-io/menubar/internal/clock"
	"github.com/watchfire-io/menubar/internal/fullscreen"
	"github.com/watchfire-io/menubar/internal/store"
)

// Lifecycle is implemented by every part mounted with the bar.
type Lifecycle interface {
	OnInit()
	OnTeardown()
}

// DependencyObserver re-runs work when an explicit dependency changes.
type DependencyObserver[D comparable] interface {
	OnDependencyChanged(prev, next D)
}

// Options configure a MenuBar.
type Options struct {
	Title string
	// Hide drops the bar below other surfaces.
	Hide bool

	// RegisterSearchAnchor receives the search trigger's anchor once.
	RegisterSearchAnchor func(*anchor.Handle)
	ToggleSearch         func()
	Power                PowerActions

	Store  audio.Store
	Engine audio.Engine
	Zones  *zone.Manager

	Scheduler clock.Scheduler
	Now       func() time.Time
	OnClock   func(time.Time)

	Predicate fullscreen.Predicate
	Window    fullscreen.Dimensions
}

// MenuBar is the mounted top bar.
type MenuBar struct {
	opts Options

	Anchors    *anchor.Registry
	Audio      *audio.Bridge
	Fullscreen *fullscreen.Sync
	Clock      *clock.Ticker
	Controller *Controller

	parts   []Lifecycle
	window  fullscreen.Dimensions
	mounted bool
}

var _ DependencyObserver[fullscreen.Dimensions] = (*fullscreen.Sync)(nil)

// New wires the bar's parts. Nothing runs until Mount.
func New(opts Options) *MenuBar {
	if opts.Store == nil {
		opts.Store = store.New(store.State{Volume: 100, Brightness: 100, Wifi: true})
	}

	b := &MenuBar{opts: opts, window: opts.Window}
	b.Anchors = anchor.NewRegistry(opts.Zones)
	b.Audio = audio.NewBridge(opts.Engine, opts.Store)
	b.Fullscreen = fullscreen.New(opts.Store, opts.Predicate, b.Anchors, opts.RegisterSearchAnchor, opts.Window)
	b.Clock = clock.NewTicker(opts.Scheduler, clock.DefaultInterval, opts.Now, opts.OnClock)
	b.Controller = NewController(b.Anchors, b.Audio, opts.Power)

	b.parts = []Lifecycle{b.Anchors, b.Audio, b.Fullscreen, b.Clock}
	return b
}

// Mount runs every part's init in order.
func (b *MenuBar) Mount() {
	if b.mounted {
		return
	}
	b.Fullscreen.SetWindow(b.window)
	for _, p := range b.parts {
		p.OnInit()
	}
	b.mounted = true
	slog.Info("menu bar mounted", slog.String("title", b.opts.Title))
}

// Unmount tears the parts down in reverse order. The clock stops first so
// no refresh lands on a torn down bar.
func (b *MenuBar) Unmount() {
	if !b.mounted {
		return
	}
	for i := len(b.parts) - 1; i >= 0; i-- {
		b.parts[i].OnTeardown()
	}
	b.mounted = false
	slog.Info("menu bar unmounted")
}

// Mounted reports whether the bar is live.
func (b *MenuBar) Mounted() bool { return b.mounted }

// Resize feeds a new window size to the fullscreen sync. Before mount it
// only records the size, which Mount then publishes.
func (b *MenuBar) Resize(next fullscreen.Dimensions) {
	prev := b.window
	b.window = next
	if !b.mounted {
		return
	}
	b.Fullscreen.OnDependencyChanged(prev, next)
}

// Window returns the last window size seen.
func (b *MenuBar) Window() fullscreen.Dimensions { return b.window }

// Title returns the bar's title.
func (b *MenuBar) Title() string { return b.opts.Title }

// SetTitle replaces the bar's title.
func (b *MenuBar) SetTitle(title string) { b.opts.Title = title }

// Hidden reports the z-order hint.
func (b *MenuBar) Hidden() bool { return b.opts.Hide }

// SetHidden replaces the z-order hint.
func (b *MenuBar) SetHidden(hide bool) { b.opts.Hide = hide }

// State reads the shared store.
func (b *MenuBar) State() store.State { return b.opts.Store.Get() }

// ToggleSearch forwards a search trigger click to the parent.
func (b *MenuBar) ToggleSearch() {
	if b.opts.ToggleSearch != nil {
		b.opts.ToggleSearch()
	}
}
