// Package anchor owns the stable handles overlays use to position themselves
// next to the menu bar trigger that opened them.
package anchor

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"
)

// Trigger identifies a clickable element of the menu bar.
type Trigger int

// Triggers owning an anchor handle.
const (
	System Trigger = iota
	ControlCenter
	Network
	Search
)

var triggerNames = [...]string{"system", "control-center", "network", "search"}

func (t Trigger) String() string {
	if int(t) < 0 || int(t) >= len(triggerNames) {
		return "unknown"
	}
	return triggerNames[t]
}

// Triggers lists every trigger in creation order.
func Triggers() []Trigger {
	return []Trigger{System, ControlCenter, Network, Search}
}

// Rect is a trigger's on-screen cell rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Handle references a trigger's on-screen position. A nil *Handle is valid
// and reports no position.
type Handle struct {
	id      string
	trigger Trigger
	zones   *zone.Manager
}

// ID returns the zone id backing the handle.
func (h *Handle) ID() string {
	if h == nil {
		return ""
	}
	return h.id
}

// Trigger returns the trigger the handle belongs to.
func (h *Handle) Trigger() Trigger {
	if h == nil {
		return -1
	}
	return h.trigger
}

// Mark wraps rendered trigger content so its position is recorded on the
// next scan of the frame.
func (h *Handle) Mark(content string) string {
	if h == nil || h.zones == nil {
		return content
	}
	return h.zones.Mark(h.id, content)
}

// Bounds returns the trigger's last scanned rectangle.
func (h *Handle) Bounds() (Rect, bool) {
	if h == nil || h.zones == nil {
		return Rect{}, false
	}
	info := h.zones.Get(h.id)
	if info == nil || info.IsZero() {
		return Rect{}, false
	}
	return Rect{
		X:      info.StartX,
		Y:      info.StartY,
		Width:  info.EndX - info.StartX + 1,
		Height: info.EndY - info.StartY + 1,
	}, true
}

// InBounds reports whether the mouse event falls on the trigger.
func (h *Handle) InBounds(msg tea.MouseMsg) bool {
	if h == nil || h.zones == nil {
		return false
	}
	info := h.zones.Get(h.id)
	if info == nil {
		return false
	}
	return info.InBounds(msg)
}

// Registry creates one handle per trigger and keeps them for its lifetime.
type Registry struct {
	mu         sync.Mutex
	zones      *zone.Manager
	handles    map[Trigger]*Handle
	searchSent bool
}

// NewRegistry creates a registry recording positions in zones. zones may be
// nil, in which case handles exist but never report a position.
func NewRegistry(zones *zone.Manager) *Registry {
	return &Registry{zones: zones}
}

// OnInit creates the handles. Calling it again keeps the existing handles.
func (r *Registry) OnInit() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handles != nil {
		return
	}
	r.handles = make(map[Trigger]*Handle, len(triggerNames))
	for _, t := range Triggers() {
		r.handles[t] = &Handle{
			id:      "anchor-" + t.String() + "-" + uuid.NewString(),
			trigger: t,
			zones:   r.zones,
		}
	}
}

// OnTeardown forgets the recorded positions. Handles stay valid but report
// no position afterwards.
func (r *Registry) OnTeardown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.zones == nil {
		return
	}
	for _, h := range r.handles {
		r.zones.Clear(h.id)
	}
}

// Handle returns the handle for t, or nil before OnInit.
func (r *Registry) Handle(t Trigger) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handles[t]
}

// RegisterSearch hands the search handle to fn. Only the first call after
// OnInit reaches fn; it reports whether fn was invoked.
func (r *Registry) RegisterSearch(fn func(*Handle)) bool {
	r.mu.Lock()
	if r.searchSent || r.handles == nil {
		r.mu.Unlock()
		return false
	}
	r.searchSent = true
	h := r.handles[Search]
	r.mu.Unlock()

	if fn != nil {
		fn(h)
	}
	return true
}
