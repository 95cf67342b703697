package tray

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/getlantern/systray"

	"github.com/watchfire-io/menubar/internal/menubar"
	"github.com/watchfire-io/menubar/internal/store"
)

var (
	opts Options

	volumeItem *systray.MenuItem
	actionItem []*systray.MenuItem
	quitItem   *systray.MenuItem

	stateMu sync.Mutex
	current store.State

	started sync.Once
)

// Start runs the tray on its own locked OS thread so the terminal program
// keeps the main goroutine. On macOS the tray must own the main thread, so
// it is not started there.
func Start(o Options) {
	if runtime.GOOS == "darwin" {
		slog.Warn("system tray is not supported alongside the terminal on macOS")
		return
	}
	started.Do(func() {
		opts = o
		setState(o.Initial)
		go func() {
			runtime.LockOSThread()
			systray.Run(onReady, onQuit)
		}()
	})
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetTemplateIcon(iconData, iconData)
	systray.SetTitle("")
	systray.SetTooltip(formatTooltip(opts.Title, getState()))

	header := systray.AddMenuItem(opts.Title, "")
	header.Disable()

	volumeItem = systray.AddMenuItem(formatVolume(getState()), "")
	volumeItem.Disable()

	systray.AddSeparator()

	actionItem = make([]*systray.MenuItem, len(powerItems))
	for i, action := range powerItems {
		actionItem[i] = systray.AddMenuItem(action.String(), "")
	}

	systray.AddSeparator()
	quitItem = systray.AddMenuItem("Quit", "Close the desktop")

	for i, item := range actionItem {
		go forwardClicks(item, powerItems[i])
	}
	go func() {
		for range quitItem.ClickedCh {
			if opts.OnQuit != nil {
				opts.OnQuit()
			}
		}
	}()
	if opts.Changes != nil {
		go followStore(opts.Changes)
	}

	slog.Info("system tray ready")
}

func onQuit() {
	slog.Debug("system tray exited")
}

func forwardClicks(item *systray.MenuItem, action menubar.PowerAction) {
	for range item.ClickedCh {
		slog.Debug("tray power item clicked", slog.String("action", action.String()))
		if opts.OnPower != nil {
			opts.OnPower(action)
		}
	}
}

func followStore(changes <-chan store.Change) {
	for change := range changes {
		setState(change.State)
		volumeItem.SetTitle(formatVolume(change.State))
		systray.SetTooltip(formatTooltip(opts.Title, change.State))
	}
}

func setState(s store.State) {
	stateMu.Lock()
	current = s
	stateMu.Unlock()
}

func getState() store.State {
	stateMu.Lock()
	defer stateMu.Unlock()
	return current
}
