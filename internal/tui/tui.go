// Package tui implements the terminal desktop that hosts the menu bar.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"golang.org/x/term"

	"github.com/watchfire-io/menubar/internal/audio"
	"github.com/watchfire-io/menubar/internal/models"
	"github.com/watchfire-io/menubar/internal/store"
	"github.com/watchfire-io/menubar/internal/watcher"
)

var errNotTerminal = errors.New("menubar needs an interactive terminal")

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Companion runs alongside the desktop, e.g. the OS tray. send delivers
// messages into the program from any goroutine. The returned func stops it.
type Companion func(send func(tea.Msg), st *store.Store) (stop func())

// Options configure a desktop session.
type Options struct {
	Settings *models.Settings
	// SettingsPath is watched for changes when set.
	SettingsPath string
	Companions   []Companion
}

// Run launches the desktop and blocks until it quits.
func Run(opts Options) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errNotTerminal
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("failed to read terminal size: %w", err)
	}

	settings := opts.Settings
	if settings == nil {
		settings = models.NewSettings()
	}

	st := store.New(store.State{
		Volume:     settings.Audio.Volume,
		Brightness: settings.Display.Brightness,
		Wifi:       settings.Wifi,
	})

	ref := &programRef{}
	model := NewModel(Config{
		Settings:  settings,
		Store:     st,
		Zones:     zone.New(),
		NewEngine: engineFactory(settings.Audio.Music),
		Width:     width,
		Height:    height,
	}, ref)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	ref.Set(p)

	changes := st.Subscribe()
	defer st.Unsubscribe(changes)
	go func() {
		for change := range changes {
			ref.Send(StoreChangedMsg{Change: change})
		}
	}()

	if opts.SettingsPath != "" {
		w, err := watcher.New(opts.SettingsPath)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			slog.Warn("settings hot reload disabled", slog.Any("err", err))
		} else {
			defer w.Stop()
			go forwardReloads(w.Events(), w.Done(), ref.Send)
		}
	}

	for _, companion := range opts.Companions {
		if stop := companion(ref.Send, st); stop != nil {
			defer stop()
		}
	}

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.shutdown()
	}
	return err
}

// forwardReloads turns watcher events into messages until done is closed.
func forwardReloads(events <-chan watcher.Reloaded, done <-chan struct{}, send func(tea.Msg)) {
	for {
		select {
		case <-done:
			return
		case ev := <-events:
			send(SettingsReloadedMsg{Reloaded: ev})
		}
	}
}

// engineFactory opens the configured track for every mount. A missing or
// unreadable track falls back to a silent engine.
func engineFactory(music string) func() audio.Engine {
	return func() audio.Engine {
		if music == "" {
			return audio.NewSilentEngine(false)
		}
		engine, err := audio.OpenFile(music)
		if err != nil {
			slog.Warn("music unavailable, playing silence", slog.String("path", music), slog.Any("err", err))
			return audio.NewSilentEngine(false)
		}
		return engine
	}
}
