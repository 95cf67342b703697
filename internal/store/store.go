// Package store holds the process-wide desktop state shared by the menu bar
// and its overlays. All writes go through a single Dispatch entry point.
package store

import (
	"log/slog"
	"sync"
)

// State is a snapshot of the shared desktop settings.
type State struct {
	Volume     int
	Brightness int
	Wifi       bool
	Fullscreen bool
}

// Reader is the typed read accessor consumed by the menu bar core.
type Reader interface {
	Get() State
}

// Dispatcher is the single write entry point consumed by the menu bar core.
type Dispatcher interface {
	Dispatch(Action)
}

// Action is a write request applied by Dispatch.
type Action interface {
	apply(*State)
	Field() Field
}

// Field names the slice of State an action writes.
type Field string

// Fields written by actions.
const (
	FieldVolume     Field = "volume"
	FieldBrightness Field = "brightness"
	FieldWifi       Field = "wifi"
	FieldFullscreen Field = "fullscreen"
)

// SetVolume writes the volume setting. Values are stored as given.
type SetVolume struct{ Value int }

func (a SetVolume) apply(s *State) { s.Volume = a.Value }
func (SetVolume) Field() Field     { return FieldVolume }

// SetBrightness writes the brightness setting. Values are stored as given.
type SetBrightness struct{ Value int }

func (a SetBrightness) apply(s *State) { s.Brightness = a.Value }
func (SetBrightness) Field() Field     { return FieldBrightness }

// SetWifi writes the wifi flag.
type SetWifi struct{ On bool }

func (a SetWifi) apply(s *State) { s.Wifi = a.On }
func (SetWifi) Field() Field     { return FieldWifi }

// ToggleWifi flips the wifi flag.
type ToggleWifi struct{}

func (ToggleWifi) apply(s *State) { s.Wifi = !s.Wifi }
func (ToggleWifi) Field() Field   { return FieldWifi }

// SetFullscreen writes the derived fullscreen flag.
type SetFullscreen struct{ On bool }

func (a SetFullscreen) apply(s *State) { s.Fullscreen = a.On }
func (SetFullscreen) Field() Field     { return FieldFullscreen }

// Change is delivered to subscribers after every dispatch.
type Change struct {
	Action Action
	State  State
}

const subscriberBuffer = 16

// Store is the serialized shared state container.
type Store struct {
	mu     sync.Mutex
	state  State
	writes map[Field]int
	subs   []chan Change
}

// New creates a store seeded with the initial state.
func New(initial State) *Store {
	return &Store{
		state:  initial,
		writes: make(map[Field]int),
	}
}

// Get returns the current state.
func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies the action and notifies subscribers. A subscriber whose
// buffer is full misses the notification; dispatch never blocks on it.
func (s *Store) Dispatch(a Action) {
	if a == nil {
		return
	}

	s.mu.Lock()
	a.apply(&s.state)
	s.writes[a.Field()]++
	change := Change{Action: a, State: s.state}
	for _, ch := range s.subs {
		select {
		case ch <- change:
		default:
		}
	}
	s.mu.Unlock()

	slog.Debug("store dispatch", slog.String("field", string(a.Field())), slog.Any("action", a))
}

// Subscribe returns a channel receiving every subsequent change.
func (s *Store) Subscribe() <-chan Change {
	ch := make(chan Change, subscriberBuffer)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Unsubscribe stops delivery to ch and closes it.
func (s *Store) Unsubscribe(ch <-chan Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.subs {
		if c == ch {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			close(c)
			return
		}
	}
}

// Writes returns how many dispatches targeted field.
func (s *Store) Writes(field Field) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[field]
}
