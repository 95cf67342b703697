// Package audio bridges the desktop's volume setting to a playback engine.
package audio

import (
	"errors"
	"sync"
)

// ErrPlaybackBlocked is returned by engines the platform refuses to start.
var ErrPlaybackBlocked = errors.New("playback blocked by platform")

// Engine is an audio transport with a linear gain in [0,1].
type Engine interface {
	Play() error
	Pause() error
	Playing() bool
	SetVolume(v float64) error
	Volume() float64
	Close() error
}

// PlaybackState is the engine's transport state.
type PlaybackState struct {
	Playing bool
	Volume  float64
}

// SilentEngine tracks transport state without producing sound. It is used
// when no track is configured or the platform has no audio device.
type SilentEngine struct {
	mu      sync.Mutex
	playing bool
	volume  float64
	blocked bool
}

// NewSilentEngine creates a paused engine at full gain. A blocked engine
// refuses Play, like a platform denying programmatic playback.
func NewSilentEngine(blocked bool) *SilentEngine {
	return &SilentEngine{volume: 1, blocked: blocked}
}

func (e *SilentEngine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.blocked {
		return ErrPlaybackBlocked
	}
	e.playing = true
	return nil
}

func (e *SilentEngine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playing = false
	return nil
}

func (e *SilentEngine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

func (e *SilentEngine) SetVolume(v float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = v
	return nil
}

func (e *SilentEngine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

func (e *SilentEngine) Close() error {
	return e.Pause()
}
