// Package clock refreshes the menu bar's displayed time on a fixed period.
package clock

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is the refresh period of the displayed clock.
const DefaultInterval = 60 * time.Second

// Ticker replaces the displayed timestamp every period. The period starts
// when Start is called and is not aligned to minute boundaries, so the shown
// minute can trail the real one by up to one period.
type Ticker struct {
	mu      sync.Mutex
	sched   Scheduler
	period  time.Duration
	now     func() time.Time
	onTick  func(time.Time)
	current time.Time
	cancel  func()
	gen     int
	ticks   int
}

// NewTicker creates a stopped ticker. now defaults to time.Now, period to
// DefaultInterval. onTick, if set, is called after each state update.
func NewTicker(sched Scheduler, period time.Duration, now func() time.Time, onTick func(time.Time)) *Ticker {
	if sched == nil {
		sched = RealScheduler{}
	}
	if period <= 0 {
		period = DefaultInterval
	}
	if now == nil {
		now = time.Now
	}
	return &Ticker{
		sched:   sched,
		period:  period,
		now:     now,
		onTick:  onTick,
		current: now(),
	}
}

// Start schedules the repeating refresh. It is a no-op while running.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		return
	}
	t.gen++
	gen := t.gen
	t.cancel = t.sched.Every(t.period, func() { t.fire(gen) })
	slog.Debug("clock ticker started", slog.Duration("period", t.period))
}

// Stop cancels the refresh. No state update happens after Stop returns.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel == nil {
		return
	}
	t.cancel()
	t.cancel = nil
	t.gen++
	slog.Debug("clock ticker stopped", slog.Int("ticks", t.ticks))
}

// OnInit starts the ticker.
func (t *Ticker) OnInit() { t.Start() }

// OnTeardown stops the ticker.
func (t *Ticker) OnTeardown() { t.Stop() }

// Running reports whether the refresh is scheduled.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

// Now returns the displayed timestamp.
func (t *Ticker) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Ticks returns how many refreshes were applied.
func (t *Ticker) Ticks() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticks
}

func (t *Ticker) fire(gen int) {
	t.mu.Lock()
	if gen != t.gen || t.cancel == nil {
		t.mu.Unlock()
		return
	}
	t.current = t.now()
	t.ticks++
	current := t.current
	onTick := t.onTick
	t.mu.Unlock()

	if onTick != nil {
		onTick(current)
	}
}
