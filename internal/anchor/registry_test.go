package anchor_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/menubar/internal/anchor"
)

func TestHandlesCreatedOnce(t *testing.T) {
	r := anchor.NewRegistry(zone.New())
	for _, trig := range anchor.Triggers() {
		require.Nil(t, r.Handle(trig), "no handle before init")
	}

	r.OnInit()
	first := make(map[anchor.Trigger]*anchor.Handle)
	ids := make(map[string]bool)
	for _, trig := range anchor.Triggers() {
		h := r.Handle(trig)
		require.NotNil(t, h)
		require.Equal(t, trig, h.Trigger())
		require.False(t, ids[h.ID()], "ids must be unique")
		ids[h.ID()] = true
		first[trig] = h
	}

	r.OnInit()
	for _, trig := range anchor.Triggers() {
		require.Same(t, first[trig], r.Handle(trig))
	}
}

func TestRegisterSearchSingleShot(t *testing.T) {
	r := anchor.NewRegistry(nil)
	require.False(t, r.RegisterSearch(func(*anchor.Handle) { t.Fatal("called before init") }))

	r.OnInit()

	var got []*anchor.Handle
	fn := func(h *anchor.Handle) { got = append(got, h) }
	require.True(t, r.RegisterSearch(fn))
	require.False(t, r.RegisterSearch(fn))
	require.False(t, r.RegisterSearch(fn))

	require.Len(t, got, 1)
	require.Same(t, r.Handle(anchor.Search), got[0])
}

func TestNilHandleTolerated(t *testing.T) {
	var h *anchor.Handle
	require.Equal(t, "", h.ID())
	require.Equal(t, "menu", h.Mark("menu"))
	_, ok := h.Bounds()
	require.False(t, ok)
	require.False(t, h.InBounds(tea.MouseMsg{X: 1, Y: 1}))
}

func TestHandleWithoutZones(t *testing.T) {
	r := anchor.NewRegistry(nil)
	r.OnInit()
	h := r.Handle(anchor.Network)
	require.Equal(t, "wifi", h.Mark("wifi"))
	_, ok := h.Bounds()
	require.False(t, ok)
}

func TestBoundsFromScan(t *testing.T) {
	zones := zone.New()
	r := anchor.NewRegistry(zones)
	r.OnInit()
	h := r.Handle(anchor.ControlCenter)

	out := zones.Scan("ab" + h.Mark("XYZ") + "cd")
	require.Equal(t, "abXYZcd", out)

	require.Eventually(t, func() bool {
		_, ok := h.Bounds()
		return ok
	}, time.Second, 5*time.Millisecond)

	rect, _ := h.Bounds()
	require.Equal(t, anchor.Rect{X: 2, Y: 0, Width: 3, Height: 1}, rect)
	require.True(t, h.InBounds(tea.MouseMsg{X: 3, Y: 0}))
	require.False(t, h.InBounds(tea.MouseMsg{X: 6, Y: 0}))
}

func TestTriggerString(t *testing.T) {
	require.Equal(t, "system", anchor.System.String())
	require.Equal(t, "search", anchor.Search.String())
	require.Equal(t, "unknown", anchor.Trigger(9).String())
}
