// Package watcher reloads the settings file when it changes on disk.
package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/watchfire-io/menubar/internal/config"
	"github.com/watchfire-io/menubar/internal/models"
)

// DebounceDelay is how long the watcher waits after the last event for a
// path before reloading it.
const DebounceDelay = 100 * time.Millisecond

// Reloaded carries freshly loaded settings. Err is set when the file changed
// but could not be parsed; Settings is nil in that case.
type Reloaded struct {
	Settings *models.Settings
	Path     string
	Err      error
}

// Watcher watches the settings file's directory.
type Watcher struct {
	path      string
	fsWatcher *fsnotify.Watcher
	events    chan Reloaded
	done      chan struct{}
	stopOnce  sync.Once

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// New creates a watcher for the settings file at path. The file itself may
// not exist yet; its directory must.
func New(path string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &Watcher{
		path:      filepath.Clean(path),
		fsWatcher: fsWatcher,
		events:    make(chan Reloaded, 8),
		done:      make(chan struct{}),
	}, nil
}

// Events returns the channel for receiving reloads.
func (w *Watcher) Events() <-chan Reloaded {
	return w.events
}

// Done is closed by Stop. Events is never closed, so readers select on
// Done to know when to give up.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Start begins watching. Editors often replace the file with a rename, so
// the directory is watched rather than the file.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	slog.Debug("watching settings", slog.String("path", w.path))

	go w.processEvents()
	return nil
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			slog.Warn("settings watcher error", slog.Any("err", err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(DebounceDelay, w.reload)
}

func (w *Watcher) reload() {
	// A rename away leaves nothing to read; wait for the next create.
	if !config.FileExists(w.path) {
		return
	}

	settings, err := config.LoadSettingsFrom(w.path)
	if err != nil {
		slog.Warn("settings reload failed", slog.String("path", w.path), slog.Any("err", err))
		settings = nil
	} else {
		slog.Info("settings reloaded", slog.String("path", w.path))
	}

	select {
	case <-w.done:
	case w.events <- Reloaded{Settings: settings, Path: w.path, Err: err}:
	}
}
