package menubar_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/menubar/internal/anchor"
	"github.com/watchfire-io/menubar/internal/menubar"
)

// callLog records pause and power calls in the order they happen.
type callLog struct {
	calls  []string
	events []menubar.Event
}

func (l *callLog) Pause() bool {
	l.calls = append(l.calls, "pause")
	return true
}

func (l *callLog) power(name string) menubar.PowerFunc {
	return func(ev menubar.Event) {
		l.calls = append(l.calls, name)
		l.events = append(l.events, ev)
	}
}

func (l *callLog) actions() menubar.PowerActions {
	return menubar.PowerActions{
		LogOut:   l.power("logOut"),
		ShutDown: l.power("shutDown"),
		Restart:  l.power("restart"),
		Sleep:    l.power("sleep"),
	}
}

func TestInitialStateAllClosed(t *testing.T) {
	c := menubar.NewController(nil, nil, menubar.PowerActions{})
	require.Equal(t, menubar.Visibility{}, c.Visibility())
	require.Empty(t, c.Overlays())
}

func TestTogglesAreIndependent(t *testing.T) {
	c := menubar.NewController(nil, nil, menubar.PowerActions{})

	c.ToggleSystemMenu()
	require.Equal(t, menubar.Visibility{System: true}, c.Visibility())

	c.ToggleNetworkMenu()
	require.Equal(t, menubar.Visibility{System: true, Network: true}, c.Visibility())

	c.ToggleControlCenter()
	require.Equal(t, menubar.Visibility{System: true, Network: true, Control: true}, c.Visibility())

	c.ToggleNetworkMenu()
	require.Equal(t, menubar.Visibility{System: true, Control: true}, c.Visibility())
}

func TestToggleParity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	toggles := []func(*menubar.Controller){
		(*menubar.Controller).ToggleSystemMenu,
		(*menubar.Controller).ToggleNetworkMenu,
		(*menubar.Controller).ToggleControlCenter,
	}

	for run := 0; run < 50; run++ {
		c := menubar.NewController(nil, nil, menubar.PowerActions{})
		var counts [3]int
		n := rng.Intn(40)
		for i := 0; i < n; i++ {
			k := rng.Intn(3)
			toggles[k](c)
			counts[k]++
		}
		v := c.Visibility()
		require.Equal(t, counts[0]%2 == 1, v.System)
		require.Equal(t, counts[1]%2 == 1, v.Network)
		require.Equal(t, counts[2]%2 == 1, v.Control)
	}
}

func TestAllEightStatesReachable(t *testing.T) {
	seen := make(map[menubar.Visibility]bool)
	for mask := 0; mask < 8; mask++ {
		c := menubar.NewController(nil, nil, menubar.PowerActions{})
		if mask&1 != 0 {
			c.ToggleSystemMenu()
		}
		if mask&2 != 0 {
			c.ToggleNetworkMenu()
		}
		if mask&4 != 0 {
			c.ToggleControlCenter()
		}
		seen[c.Visibility()] = true
		require.Len(t, c.Overlays(), popcount(mask))
	}
	require.Len(t, seen, 8)
}

func popcount(n int) int {
	c := 0
	for ; n > 0; n >>= 1 {
		c += n & 1
	}
	return c
}

func TestOverlaysCarryOwnAnchor(t *testing.T) {
	reg := anchor.NewRegistry(nil)
	reg.OnInit()
	c := menubar.NewController(reg, nil, menubar.PowerActions{})

	c.ToggleControlCenter()
	c.ToggleSystemMenu()

	mounts := c.Overlays()
	require.Len(t, mounts, 2)
	require.Equal(t, menubar.SystemMenu, mounts[0].Menu)
	require.Same(t, reg.Handle(anchor.System), mounts[0].Anchor)
	require.Equal(t, menubar.ControlCenter, mounts[1].Menu)
	require.Same(t, reg.Handle(anchor.ControlCenter), mounts[1].Anchor)

	mounts[1].Close()
	require.Equal(t, menubar.Visibility{System: true}, c.Visibility())

	mounts[0].Close()
	require.Empty(t, c.Overlays())
}

func TestOverlaysWithoutRegistry(t *testing.T) {
	c := menubar.NewController(nil, nil, menubar.PowerActions{})
	c.ToggleNetworkMenu()
	mounts := c.Overlays()
	require.Len(t, mounts, 1)
	require.Nil(t, mounts[0].Anchor)
}

func TestPowerActionsPauseFirst(t *testing.T) {
	type click struct{ x, y int }

	tests := []struct {
		name   string
		invoke func(*menubar.Controller, menubar.Event)
		want   string
	}{
		{"log out", (*menubar.Controller).LogOut, "logOut"},
		{"shut down", (*menubar.Controller).ShutDown, "shutDown"},
		{"restart", (*menubar.Controller).Restart, "restart"},
		{"sleep", (*menubar.Controller).Sleep, "sleep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &callLog{}
			c := menubar.NewController(nil, log, log.actions())
			ev := click{x: 3, y: 4}

			tt.invoke(c, ev)

			require.Equal(t, []string{"pause", tt.want}, log.calls)
			require.Equal(t, []menubar.Event{ev}, log.events)
			require.Equal(t, menubar.Visibility{}, c.Visibility(), "power actions do not touch menus")
		})
	}
}

func TestPowerWithMissingCallback(t *testing.T) {
	log := &callLog{}
	c := menubar.NewController(nil, log, menubar.PowerActions{})
	c.Sleep(nil)
	require.Equal(t, []string{"pause"}, log.calls)
}

func TestMenuTriggers(t *testing.T) {
	require.Equal(t, anchor.System, menubar.SystemMenu.Trigger())
	require.Equal(t, anchor.Network, menubar.NetworkMenu.Trigger())
	require.Equal(t, anchor.ControlCenter, menubar.ControlCenter.Trigger())
	require.Equal(t, "control-center", menubar.ControlCenter.String())
	require.Equal(t, "restart", menubar.ActionRestart.String())
}
