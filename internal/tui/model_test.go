package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/menubar/internal/anchor"
	"github.com/watchfire-io/menubar/internal/audio"
	"github.com/watchfire-io/menubar/internal/clock"
	"github.com/watchfire-io/menubar/internal/menubar"
	"github.com/watchfire-io/menubar/internal/models"
	"github.com/watchfire-io/menubar/internal/store"
	"github.com/watchfire-io/menubar/internal/watcher"
)

var epoch = time.Date(2023, time.January, 2, 15, 4, 0, 0, time.UTC)

type fixture struct {
	model   Model
	store   *store.Store
	sched   *clock.ManualScheduler
	engines []*audio.SilentEngine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: store.New(store.State{Volume: 30, Brightness: 80, Wifi: true}),
		sched: clock.NewManualScheduler(epoch),
	}
	f.model = NewModel(Config{
		Settings: models.NewSettings(),
		Store:    f.store,
		Zones:    zone.New(),
		NewEngine: func() audio.Engine {
			e := audio.NewSilentEngine(false)
			f.engines = append(f.engines, e)
			return e
		},
		Scheduler: f.sched,
		Now:       f.sched.Now,
		Width:     100,
		Height:    30,
	}, nil)
	t.Cleanup(func() { f.model.shutdown() })
	return f
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	next, cmd := f.model.Update(msg)
	f.model = next.(Model)
	return cmd
}

func (f *fixture) engine() *audio.SilentEngine {
	return f.engines[len(f.engines)-1]
}

func (f *fixture) vis() menubar.Visibility {
	return f.model.bar.Controller.Visibility()
}

// bounds renders until the zone manager has recorded the trigger.
func (f *fixture) bounds(t *testing.T, trig anchor.Trigger) anchor.Rect {
	t.Helper()
	h := f.model.bar.Anchors.Handle(trig)
	var r anchor.Rect
	require.Eventually(t, func() bool {
		_ = f.model.View()
		var ok bool
		r, ok = h.Bounds()
		return ok
	}, 2*time.Second, 10*time.Millisecond)
	return r
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelMountsBar(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.model.bar.Mounted())
	require.Equal(t, 1, f.sched.Pending())
	require.InDelta(t, 0.3, f.engine().Volume(), 1e-9)
	require.Same(t, f.model.bar.Anchors.Handle(anchor.Search), f.model.desk.searchAnchor)
	require.Equal(t, menubar.Visibility{}, f.vis())
}

func TestViewShowsBarTokens(t *testing.T) {
	f := newFixture(t)

	view := f.model.View()
	require.Contains(t, view, "Finder")
	require.Contains(t, view, "Mon Jan 2")
	require.Contains(t, view, "3:04 pm")
	require.Contains(t, view, batteryStatus)
	require.Contains(t, view, glyphWifiOn)

	f.store.Dispatch(store.SetWifi{On: false})
	require.Contains(t, f.model.View(), glyphWifiOff)
}

func TestClockAdvancesWhileMounted(t *testing.T) {
	f := newFixture(t)

	f.sched.Advance(3 * time.Minute)
	require.Contains(t, f.model.View(), "3:07 pm")
}

func TestFunctionKeysToggleMenusIndependently(t *testing.T) {
	f := newFixture(t)

	f.send(keyMsg(tea.KeyF1))
	require.Equal(t, menubar.Visibility{System: true}, f.vis())

	f.send(keyMsg(tea.KeyF2))
	f.send(keyMsg(tea.KeyF3))
	require.Equal(t, menubar.Visibility{System: true, Network: true, Control: true}, f.vis())

	f.send(keyMsg(tea.KeyF2))
	require.Equal(t, menubar.Visibility{System: true, Control: true}, f.vis())

	f.send(keyMsg(tea.KeyF1))
	f.send(keyMsg(tea.KeyF3))
	require.Equal(t, menubar.Visibility{}, f.vis())
}

func TestEscClosesNewestOverlay(t *testing.T) {
	f := newFixture(t)

	f.send(keyMsg(tea.KeyF3))
	f.send(keyMsg(tea.KeyF1))
	f.send(keyMsg(tea.KeyEsc))
	require.Equal(t, menubar.Visibility{Control: true}, f.vis())

	f.send(keyMsg(tea.KeyEsc))
	require.Equal(t, menubar.Visibility{}, f.vis())

	f.send(keyMsg(tea.KeyEsc))
	require.Equal(t, menubar.Visibility{}, f.vis())
}

func TestClickOnTriggerTogglesOnce(t *testing.T) {
	f := newFixture(t)
	r := f.bounds(t, anchor.ControlCenter)

	press := click(r.X, r.Y)
	press.Action = tea.MouseActionPress
	f.send(press)
	require.False(t, f.vis().Control, "press alone does nothing")

	f.send(click(r.X, r.Y))
	require.True(t, f.vis().Control)

	f.send(click(r.X, r.Y))
	require.False(t, f.vis().Control)
}

func TestClickOnEachTrigger(t *testing.T) {
	tests := []struct {
		trigger anchor.Trigger
		want    menubar.Visibility
	}{
		{anchor.System, menubar.Visibility{System: true}},
		{anchor.Network, menubar.Visibility{Network: true}},
		{anchor.ControlCenter, menubar.Visibility{Control: true}},
	}
	for _, tt := range tests {
		t.Run(tt.trigger.String(), func(t *testing.T) {
			f := newFixture(t)
			r := f.bounds(t, tt.trigger)
			f.send(click(r.X, r.Y))
			require.Equal(t, tt.want, f.vis())
		})
	}
}

func TestClickOnSearchForwardsToggle(t *testing.T) {
	f := newFixture(t)
	r := f.bounds(t, anchor.Search)

	f.send(click(r.X, r.Y))
	require.True(t, f.model.desk.searchOpen)
	require.Equal(t, menubar.Visibility{}, f.vis(), "search is not a bar menu")

	f.send(click(r.X, r.Y))
	require.False(t, f.model.desk.searchOpen)
}

func TestClickOnDesktopClosesMenus(t *testing.T) {
	f := newFixture(t)
	f.send(keyMsg(tea.KeyF1))
	f.send(keyMsg(tea.KeyF2))

	f.send(click(50, 25))
	require.Equal(t, menubar.Visibility{}, f.vis())
}

func TestOverlayHangsFromItsAnchor(t *testing.T) {
	f := newFixture(t)
	r := f.bounds(t, anchor.System)

	f.send(keyMsg(tea.KeyF1))
	ps := f.model.placements()
	require.Len(t, ps, 1)
	require.Equal(t, focusSystem, ps[0].target)
	require.Equal(t, r.X, ps[0].x)
	require.Equal(t, r.Y+r.Height, ps[0].y)
}

func TestPlaceUnder(t *testing.T) {
	tests := []struct {
		name         string
		rect         anchor.Rect
		w, h         int
		wantX, wantY int
	}{
		{"under anchor", anchor.Rect{X: 10, Y: 0, Width: 3, Height: 1}, 20, 5, 10, 1},
		{"clamped to right edge", anchor.Rect{X: 95, Y: 0, Width: 3, Height: 1}, 20, 5, 80, 1},
		{"clamped to bottom", anchor.Rect{X: 0, Y: 0, Width: 3, Height: 1}, 20, 40, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zones := zone.New()
			reg := anchor.NewRegistry(zones)
			reg.OnInit()
			h := reg.Handle(anchor.System)

			line := ""
			for i := 0; i < tt.rect.X; i++ {
				line += " "
			}
			_ = zones.Scan(line + h.Mark("abc"))
			require.Eventually(t, func() bool {
				_, ok := h.Bounds()
				return ok
			}, 2*time.Second, 10*time.Millisecond)

			x, y := placeUnder(h, tt.w, tt.h, 100, 30)
			require.Equal(t, tt.wantX, x)
			require.Equal(t, tt.wantY, y)
		})
	}
}

func TestPlaceUnderWithoutAnchor(t *testing.T) {
	x, y := placeUnder(nil, 10, 5, 100, 30)
	require.Equal(t, 90, x)
	require.Equal(t, 1, y)
}

func TestOverlayAtComposites(t *testing.T) {
	base := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	got := overlayAt(base, "XY\nZW", 3, 1, 10)
	require.Equal(t, "aaaaaaaaaa\nbbb\x1b[0mXY\x1b[0mbbbbb\nccc\x1b[0mZW\x1b[0mccccc", got)
}

func TestSleepPausesMusicFirst(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.model.bar.Audio.Toggle())

	f.send(keyMsg(tea.KeyF1))
	f.send(keyMsg(tea.KeyDown)) // skips the separator
	require.Equal(t, 2, f.model.system.cursor)
	enter := keyMsg(tea.KeyEnter)
	f.send(enter)

	require.Equal(t, powerAsleep, f.model.desk.state)
	require.Equal(t, enter, f.model.desk.lastEvent)
	require.False(t, f.engine().Playing())
	require.True(t, f.model.bar.Mounted(), "sleep keeps the desktop")
	require.Equal(t, menubar.Visibility{}, f.vis())

	f.send(runes("x"))
	require.Equal(t, powerOn, f.model.desk.state)
}

func TestLogOutLocksAndRemounts(t *testing.T) {
	f := newFixture(t)
	old := f.model.bar
	require.True(t, old.Audio.Toggle())

	f.send(PowerMsg{Action: menubar.ActionLogOut})
	require.Equal(t, powerLocked, f.model.desk.state)
	require.False(t, old.Mounted())
	require.False(t, f.engine().Playing())
	require.Equal(t, 0, f.sched.Pending(), "clock cancelled")
	require.Contains(t, f.model.View(), "to log in")

	f.send(runes("a"))
	require.Equal(t, powerLocked, f.model.desk.state)

	f.send(keyMsg(tea.KeyEnter))
	require.Equal(t, powerOn, f.model.desk.state)
	require.NotSame(t, old, f.model.bar)
	require.True(t, f.model.bar.Mounted())
	require.Equal(t, 1, f.sched.Pending())
	require.Len(t, f.engines, 2)
	require.Same(t, f.model.bar.Anchors.Handle(anchor.Search), f.model.desk.searchAnchor)
}

func TestRestartShowsSplashThenBoots(t *testing.T) {
	f := newFixture(t)
	old := f.model.bar

	cmd := f.send(PowerMsg{Action: menubar.ActionRestart})
	require.NotNil(t, cmd)
	require.Equal(t, powerBooting, f.model.desk.state)
	require.False(t, old.Mounted())
	require.Contains(t, f.model.View(), "Restarting")

	f.send(bootDoneMsg{})
	require.Equal(t, powerOn, f.model.desk.state)
	require.True(t, f.model.bar.Mounted())
}

func TestShutDownQuitsAndUnmounts(t *testing.T) {
	f := newFixture(t)
	ref := f.model.program

	cmd := f.send(PowerMsg{Action: menubar.ActionShutDown})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.False(t, f.model.bar.Mounted())
	require.Equal(t, 0, f.sched.Pending())
	require.Nil(t, ref.p)
}

func TestQuitKeyUnmounts(t *testing.T) {
	f := newFixture(t)

	cmd := f.send(tea.KeyMsg{Type: tea.KeyCtrlQ})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.False(t, f.model.bar.Mounted())

	f.sched.Advance(5 * time.Minute)
	require.Equal(t, 0, f.model.bar.Clock.Ticks(), "no refresh after quit")
}

func TestResizePublishesFullscreen(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.store.Get().Fullscreen, "first size is the largest seen")
	writes := f.store.Writes(store.FieldFullscreen)

	f.send(tea.WindowSizeMsg{Width: 80, Height: 24})
	require.False(t, f.store.Get().Fullscreen)
	require.Equal(t, writes+1, f.store.Writes(store.FieldFullscreen))

	f.send(tea.WindowSizeMsg{Width: 80, Height: 24})
	require.Equal(t, writes+1, f.store.Writes(store.FieldFullscreen), "same size publishes nothing")

	f.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	require.True(t, f.store.Get().Fullscreen)
}

func TestControlCenterVolumeSlider(t *testing.T) {
	f := newFixture(t)

	f.send(keyMsg(tea.KeyF3))
	f.send(keyMsg(tea.KeyDown))
	f.send(keyMsg(tea.KeyDown))
	require.Equal(t, ccVolume, f.model.control.cursor)

	f.send(keyMsg(tea.KeyRight))
	require.Equal(t, 40, f.store.Get().Volume)
	require.InDelta(t, 0.4, f.engine().Volume(), 1e-9)

	f.send(keyMsg(tea.KeyDown))
	f.send(keyMsg(tea.KeyLeft))
	require.Equal(t, 70, f.store.Get().Brightness)
	require.InDelta(t, 0.4, f.engine().Volume(), 1e-9, "brightness leaves audio alone")
}

func TestControlCenterPlayback(t *testing.T) {
	f := newFixture(t)

	f.send(keyMsg(tea.KeyF3))
	f.send(keyMsg(tea.KeyDown))
	f.send(keyMsg(tea.KeyEnter))
	require.True(t, f.engine().Playing())

	f.send(keyMsg(tea.KeyEnter))
	require.False(t, f.engine().Playing())
}

func TestSliderStepStaysInRange(t *testing.T) {
	require.Equal(t, 100, step(95, sliderStep))
	require.Equal(t, 0, step(5, -sliderStep))
	require.Equal(t, 100, step(150, sliderStep))
}

func TestNetworkMenuTogglesWifi(t *testing.T) {
	f := newFixture(t)

	f.send(keyMsg(tea.KeyF2))
	f.send(keyMsg(tea.KeyEnter))
	require.False(t, f.store.Get().Wifi)

	f.send(keyMsg(tea.KeyEnter))
	require.True(t, f.store.Get().Wifi)
}

func TestSpotlightRunsCommand(t *testing.T) {
	f := newFixture(t)

	f.send(tea.KeyMsg{Type: tea.KeyCtrlAt})
	require.True(t, f.model.desk.searchOpen)

	f.send(runes("sle"))
	require.Equal(t, []string{"Sleep"}, f.model.spotlight.Matches())

	f.send(keyMsg(tea.KeyEnter))
	require.False(t, f.model.desk.searchOpen)
	require.Equal(t, powerAsleep, f.model.desk.state)
}

func TestSpotlightTakesTypedKeys(t *testing.T) {
	f := newFixture(t)

	f.send(tea.KeyMsg{Type: tea.KeyCtrlAt})
	f.send(runes("j"))
	require.Equal(t, "j", f.model.spotlight.Query())
	require.Equal(t, menubar.Visibility{}, f.vis())

	f.send(keyMsg(tea.KeyEsc))
	require.False(t, f.model.desk.searchOpen)
}

func TestSettingsReload(t *testing.T) {
	f := newFixture(t)

	s := models.NewSettings()
	s.Title = "Mail"
	s.Hide = true
	s.Wifi = false
	f.send(SettingsReloadedMsg{Reloaded: watcher.Reloaded{Settings: s}})

	require.Equal(t, "Mail", f.model.bar.Title())
	require.True(t, f.model.bar.Hidden())
	require.False(t, f.store.Get().Wifi)
	require.Contains(t, f.model.View(), "Mail")
}

func TestStoreChangeShownInStatusBar(t *testing.T) {
	f := newFixture(t)

	f.send(StoreChangedMsg{Change: store.Change{Action: store.SetVolume{Value: 55}, State: store.State{Volume: 55}}})
	require.Equal(t, "volume 55%", f.model.lastChange)
}

func TestTooSmall(t *testing.T) {
	f := newFixture(t)
	f.send(tea.WindowSizeMsg{Width: 20, Height: 5})
	require.Contains(t, f.model.View(), "Terminal too small")
}

func TestForwardReloadsStopsWithWatcher(t *testing.T) {
	events := make(chan watcher.Reloaded, 1)
	done := make(chan struct{})
	sent := make(chan tea.Msg, 1)
	exited := make(chan struct{})
	go func() {
		forwardReloads(events, done, func(msg tea.Msg) { sent <- msg })
		close(exited)
	}()

	events <- watcher.Reloaded{Path: "settings.yaml"}
	select {
	case msg := <-sent:
		require.Equal(t, "settings.yaml", msg.(SettingsReloadedMsg).Reloaded.Path)
	case <-time.After(time.Second):
		t.Fatal("reload not forwarded")
	}

	close(done)
	require.Eventually(t, func() bool {
		select {
		case <-exited:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
