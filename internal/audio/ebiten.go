package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const sampleRate = 44100

var (
	contextOnce sync.Once
	playbackCtx *eaudio.Context
)

// sharedContext returns the process audio context. Ebiten allows only one.
func sharedContext() *eaudio.Context {
	contextOnce.Do(func() {
		playbackCtx = eaudio.CurrentContext()
		if playbackCtx == nil {
			playbackCtx = eaudio.NewContext(sampleRate)
		}
	})
	return playbackCtx
}

// FileEngine loops a decoded mp3 or wav track forever.
type FileEngine struct {
	mu     sync.Mutex
	player *eaudio.Player
	closed bool
}

type loopSource interface {
	io.ReadSeeker
	Length() int64
}

// OpenFile decodes the track at path. The engine starts paused.
func OpenFile(path string) (*FileEngine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read track %s: %w", path, err)
	}

	var src loopSource
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		src, err = mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	case ".wav":
		src, err = wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported track format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode track %s: %w", path, err)
	}

	player, err := sharedContext().NewPlayer(eaudio.NewInfiniteLoop(src, src.Length()))
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return &FileEngine{player: player}, nil
}

func (e *FileEngine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrPlaybackBlocked
	}
	e.player.Play()
	return nil
}

func (e *FileEngine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.player.Pause()
	}
	return nil
}

func (e *FileEngine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.closed && e.player.IsPlaying()
}

func (e *FileEngine) SetVolume(v float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.player.SetVolume(v)
	}
	return nil
}

func (e *FileEngine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return 0
	}
	return e.player.Volume()
}

func (e *FileEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return e.player.Close()
}
