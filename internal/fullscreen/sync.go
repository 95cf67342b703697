// Package fullscreen derives the desktop's fullscreen flag from the window
// dimensions and publishes it to the shared store.
package fullscreen

import (
	"log/slog"

	"github.com/watchfire-io/menubar/internal/anchor"
	"github.com/watchfire-io/menubar/internal/store"
)

// Dimensions is the measured size of the window in cells.
type Dimensions struct {
	Width  int
	Height int
}

// Predicate reports whether a window of the given size is fullscreen.
type Predicate func(Dimensions) bool

// Sync publishes the fullscreen predicate on mount and on every size change.
// It keeps no copy of the flag.
type Sync struct {
	dispatch       store.Dispatcher
	predicate      Predicate
	anchors        *anchor.Registry
	registerSearch func(*anchor.Handle)
	window         Dimensions
}

// New creates a Sync. initial is the window size OnInit publishes unless
// SetWindow replaces it first.
func New(dispatch store.Dispatcher, predicate Predicate, anchors *anchor.Registry, registerSearch func(*anchor.Handle), initial Dimensions) *Sync {
	return &Sync{
		dispatch:       dispatch,
		predicate:      predicate,
		anchors:        anchors,
		registerSearch: registerSearch,
		window:         initial,
	}
}

// SetWindow records the window size OnInit publishes for. The owner calls
// it when the window changes before mount.
func (s *Sync) SetWindow(dims Dimensions) {
	s.window = dims
}

// OnInit hands the search anchor to the parent and publishes once for the
// current window size.
func (s *Sync) OnInit() {
	if s.anchors != nil {
		s.anchors.RegisterSearch(s.registerSearch)
	}
	s.publish(s.window)
}

// OnTeardown is a no-op; Sync holds no resources.
func (s *Sync) OnTeardown() {}

// OnDependencyChanged re-runs the sync when width or height changed. Each
// change publishes exactly once, even if the flag value is unchanged.
func (s *Sync) OnDependencyChanged(prev, next Dimensions) {
	if prev == next {
		return
	}
	s.window = next
	s.publish(next)
}

func (s *Sync) publish(dims Dimensions) {
	full := false
	if s.predicate != nil {
		full = s.predicate(dims)
	}
	slog.Debug("fullscreen sync", slog.Int("width", dims.Width), slog.Int("height", dims.Height), slog.Bool("fullscreen", full))
	s.dispatch.Dispatch(store.SetFullscreen{On: full})
}
