package audio

import (
	"log/slog"
	"sync"

	"github.com/watchfire-io/menubar/internal/store"
)

// Store is the slice of the shared store the bridge reads and writes.
type Store interface {
	store.Reader
	store.Dispatcher
}

// Bridge owns the playback engine and keeps its gain equal to the stored
// volume divided by 100. Volume writes update both in one call.
type Bridge struct {
	mu     sync.Mutex
	engine Engine
	store  Store
}

// NewBridge takes ownership of engine.
func NewBridge(engine Engine, st Store) *Bridge {
	if engine == nil {
		engine = NewSilentEngine(false)
	}
	return &Bridge{engine: engine, store: st}
}

// Gain converts a stored volume to engine gain.
func Gain(volume int) float64 {
	return float64(volume) / 100
}

// OnInit applies the stored volume to the engine.
func (b *Bridge) OnInit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.apply(b.store.Get().Volume)
}

// OnTeardown stops playback and releases the engine.
func (b *Bridge) OnTeardown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ignore("pause", b.engine.Pause())
	b.ignore("close", b.engine.Close())
}

// SetVolume stores value and applies value/100 to the engine. value is not
// validated.
func (b *Bridge) SetVolume(value int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.store.Dispatch(store.SetVolume{Value: value})
	b.apply(value)
}

// SetBrightness stores value. It has no effect on audio.
func (b *Bridge) SetBrightness(value int) {
	b.store.Dispatch(store.SetBrightness{Value: value})
}

// Pause stops playback and reports whether anything was playing. Pausing
// while paused is a no-op.
func (b *Bridge) Pause() (wasPlaying bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.engine.Playing() {
		return false
	}
	b.ignore("pause", b.engine.Pause())
	return true
}

// Toggle flips between playing and paused and returns the new state as
// reported by the engine.
func (b *Bridge) Toggle() (playing bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.engine.Playing() {
		b.ignore("pause", b.engine.Pause())
	} else {
		b.ignore("play", b.engine.Play())
	}
	return b.engine.Playing()
}

// State returns the engine's transport state.
func (b *Bridge) State() PlaybackState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return PlaybackState{Playing: b.engine.Playing(), Volume: b.engine.Volume()}
}

func (b *Bridge) apply(volume int) {
	b.ignore("volume", b.engine.SetVolume(Gain(volume)))
}

// ignore logs engine failures; the bridge carries on as if the call worked.
func (b *Bridge) ignore(op string, err error) {
	if err != nil {
		slog.Debug("audio engine call failed", slog.String("op", op), slog.String("error", err.Error()))
	}
}
