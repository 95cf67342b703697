package fullscreen

import "sync"

// AgainstScreen treats the window as fullscreen when it covers the screen.
// A zero screen dimension matches any size on that axis.
func AgainstScreen(screen Dimensions) Predicate {
	return func(win Dimensions) bool {
		return win.Width >= screen.Width && win.Height >= screen.Height
	}
}

// HighWater treats the largest window seen so far as the screen size, which
// is what a maximised terminal reports.
func HighWater() Predicate {
	var (
		mu   sync.Mutex
		peak Dimensions
	)
	return func(win Dimensions) bool {
		mu.Lock()
		defer mu.Unlock()
		if win.Width > peak.Width {
			peak.Width = win.Width
		}
		if win.Height > peak.Height {
			peak.Height = win.Height
		}
		return win == peak
	}
}
