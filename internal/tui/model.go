package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/watchfire-io/menubar/internal/anchor"
	"github.com/watchfire-io/menubar/internal/audio"
	"github.com/watchfire-io/menubar/internal/clock"
	"github.com/watchfire-io/menubar/internal/fullscreen"
	"github.com/watchfire-io/menubar/internal/menubar"
	"github.com/watchfire-io/menubar/internal/models"
	"github.com/watchfire-io/menubar/internal/store"
)

// Minimum terminal size for the desktop.
const (
	minWidth  = 40
	minHeight = 10
)

// Config carries what a desktop session is built from.
type Config struct {
	Settings *models.Settings
	Store    *store.Store
	Zones    *zone.Manager
	// NewEngine opens a fresh playback engine for every mount.
	NewEngine func() audio.Engine

	// Scheduler and Now drive the clock; nil means wall time.
	Scheduler clock.Scheduler
	Now       func() time.Time

	Width  int
	Height int
}

// focusTarget is an overlay that can hold keyboard focus.
type focusTarget int

const (
	focusSystem focusTarget = iota
	focusNetwork
	focusControl
	focusSearch
)

func focusFor(m menubar.Menu) focusTarget {
	switch m {
	case menubar.NetworkMenu:
		return focusNetwork
	case menubar.ControlCenter:
		return focusControl
	}
	return focusSystem
}

// placement is an overlay ready to composite.
type placement struct {
	target  focusTarget
	content string
	x, y    int
	w, h    int
}

func (p placement) contains(x, y int) bool {
	return x >= p.x && x < p.x+p.w && y >= p.y && y < p.y+p.h
}

// Model is the root Bubbletea model for the desktop.
type Model struct {
	cfg       Config
	store     *store.Store
	zones     *zone.Manager
	predicate fullscreen.Predicate

	bar  *menubar.MenuBar
	desk *desktop

	// Child components
	system    *listMenu
	network   *listMenu
	control   *ControlCenter
	spotlight *Spotlight

	// focus holds open overlays, oldest first. The last entry gets keys.
	focus []focusTarget

	showHelp   bool
	showAbout  bool
	err        error
	lastChange string

	width  int
	height int

	// Program reference for goroutine Send()
	program *programRef
}

// NewModel creates the desktop and mounts its menu bar.
func NewModel(cfg Config, program *programRef) Model {
	if cfg.Settings == nil {
		cfg.Settings = models.NewSettings()
	}
	if cfg.Store == nil {
		cfg.Store = store.New(store.State{
			Volume:     cfg.Settings.Audio.Volume,
			Brightness: cfg.Settings.Display.Brightness,
			Wifi:       cfg.Settings.Wifi,
		})
	}
	if cfg.NewEngine == nil {
		cfg.NewEngine = func() audio.Engine { return audio.NewSilentEngine(false) }
	}
	if program == nil {
		program = &programRef{}
	}

	predicate := fullscreen.HighWater()
	if sc := cfg.Settings.Display.Screen; sc.Width > 0 && sc.Height > 0 {
		predicate = fullscreen.AgainstScreen(fullscreen.Dimensions{Width: sc.Width, Height: sc.Height})
	}

	m := Model{
		cfg:       cfg,
		store:     cfg.Store,
		zones:     cfg.Zones,
		predicate: predicate,
		desk:      &desktop{},
		system:    &listMenu{menu: menubar.SystemMenu},
		network:   &listMenu{menu: menubar.NetworkMenu},
		control:   NewControlCenter(),
		spotlight: NewSpotlight(),
		width:     cfg.Width,
		height:    cfg.Height,
		program:   program,
	}
	m.mountBar()
	return m
}

// mountBar builds a fresh bar around the shared store and mounts it.
func (m *Model) mountBar() {
	s := m.cfg.Settings
	title, hide := s.Title, s.Hide
	if m.bar != nil {
		title, hide = m.bar.Title(), m.bar.Hidden()
	}

	ref := m.program
	m.bar = menubar.New(menubar.Options{
		Title:                title,
		Hide:                 hide,
		RegisterSearchAnchor: m.desk.registerSearchAnchor,
		ToggleSearch:         m.desk.toggleSearch,
		Power:                m.desk.powerActions(),
		Store:                m.store,
		Engine:               m.cfg.NewEngine(),
		Zones:                m.zones,
		Scheduler:            m.cfg.Scheduler,
		Now:                  m.cfg.Now,
		OnClock: func(t time.Time) {
			ref.Send(ClockTickMsg{Time: t})
		},
		Predicate: m.predicate,
		Window:    m.window(),
	})
	m.bar.Mount()
}

func (m *Model) window() fullscreen.Dimensions {
	return fullscreen.Dimensions{Width: m.width, Height: m.height}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(m.bar.Title()),
		tea.EnableMouseCellMotion,
	)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// ── Window resize ──────────────────────────────────────────────
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Resize(m.window())
		return m, nil

	// ── Input ──────────────────────────────────────────────────────
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	// ── Bar and host events ────────────────────────────────────────
	case ClockTickMsg:
		return m, nil

	case StoreChangedMsg:
		m.lastChange = describeChange(msg.Change)
		return m, nil

	case SettingsReloadedMsg:
		return m, m.applySettings(msg.Reloaded.Settings, msg.Reloaded.Err)

	case PowerMsg:
		if m.desk.state != powerOn {
			return m, nil
		}
		return m, m.power(msg.Action, msg)

	case QuitMsg:
		return m, m.doQuit()

	case bootDoneMsg:
		if m.desk.state == powerBooting {
			m.desk.enter(powerOn, msg)
			m.mountBar()
		}
		return m, nil

	// ── Error handling ─────────────────────────────────────────────
	case ErrorMsg:
		m.err = msg.Err
		return m, clearErrorAfter(5 * time.Second)

	case ClearErrorMsg:
		m.err = nil
		return m, nil
	}

	return m, nil
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return ClearErrorMsg{} })
}

func describeChange(c store.Change) string {
	s := c.State
	switch c.Action.Field() {
	case store.FieldVolume:
		return fmt.Sprintf("volume %d%%", s.Volume)
	case store.FieldBrightness:
		return fmt.Sprintf("brightness %d%%", s.Brightness)
	case store.FieldWifi:
		if s.Wifi {
			return "wi-fi on"
		}
		return "wi-fi off"
	case store.FieldFullscreen:
		if s.Fullscreen {
			return "fullscreen"
		}
		return "windowed"
	}
	return ""
}

// applySettings takes over the parts of reloaded settings that make sense
// at runtime.
func (m *Model) applySettings(s *models.Settings, err error) tea.Cmd {
	if err != nil {
		m.err = fmt.Errorf("settings reload: %w", err)
		return clearErrorAfter(5 * time.Second)
	}
	if s == nil {
		return nil
	}
	m.cfg.Settings = s
	m.bar.SetTitle(s.Title)
	m.bar.SetHidden(s.Hide)
	m.store.Dispatch(store.SetWifi{On: s.Wifi})
	return tea.SetWindowTitle(s.Title)
}

// handleKey processes key events.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, globalKeys.Quit) || msg.Type == tea.KeyCtrlC {
		return m.doQuit()
	}

	switch m.desk.state {
	case powerLocked:
		if key.Matches(msg, lockKeys.Unlock) {
			m.desk.enter(powerOn, msg)
			m.mountBar()
		}
		return nil
	case powerAsleep:
		m.desk.enter(powerOn, msg)
		return nil
	case powerBooting, powerOff:
		return nil
	}

	if m.showHelp || m.showAbout {
		if key.Matches(msg, globalKeys.Close) || key.Matches(msg, globalKeys.Help) {
			m.showHelp, m.showAbout = false, false
		}
		return nil
	}

	// The search field takes typed text, so only a few globals apply there.
	if top, ok := m.top(); ok && top == focusSearch {
		switch {
		case key.Matches(msg, globalKeys.Search), key.Matches(msg, globalKeys.Close):
			m.closeSearch()
			return nil
		}
		c, cmd := m.spotlight.HandleKey(msg)
		if c != nil {
			m.closeSearch()
			return c.run(m, msg)
		}
		return cmd
	}

	switch {
	case key.Matches(msg, globalKeys.Help):
		m.showHelp = true
		return nil
	case key.Matches(msg, globalKeys.SystemMenu):
		m.toggleMenu(menubar.SystemMenu)
		return nil
	case key.Matches(msg, globalKeys.NetworkMenu):
		m.toggleMenu(menubar.NetworkMenu)
		return nil
	case key.Matches(msg, globalKeys.ControlCenter):
		m.toggleMenu(menubar.ControlCenter)
		return nil
	case key.Matches(msg, globalKeys.Search):
		return m.toggleSearch()
	case key.Matches(msg, globalKeys.Close):
		return m.closeTop()
	}

	top, ok := m.top()
	if !ok {
		return nil
	}
	switch top {
	case focusSystem:
		return m.system.handleKey(m, systemItems(), msg)
	case focusNetwork:
		return m.network.handleKey(m, networkItems(m.store.Get()), msg)
	case focusControl:
		m.control.HandleKey(m.store, m.bar.Audio, msg)
	}
	return nil
}

// handleMouse processes mouse events. One left click is one release, so a
// click toggles exactly once.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	switch m.desk.state {
	case powerAsleep:
		m.desk.enter(powerOn, msg)
		return nil
	case powerOn:
	default:
		return nil
	}

	if m.showHelp || m.showAbout {
		m.showHelp, m.showAbout = false, false
		return nil
	}

	anchors := m.bar.Anchors
	switch {
	case anchors.Handle(anchor.System).InBounds(msg):
		m.toggleMenu(menubar.SystemMenu)
		return nil
	case anchors.Handle(anchor.Network).InBounds(msg):
		m.toggleMenu(menubar.NetworkMenu)
		return nil
	case anchors.Handle(anchor.ControlCenter).InBounds(msg):
		m.toggleMenu(menubar.ControlCenter)
		return nil
	case anchors.Handle(anchor.Search).InBounds(msg):
		return m.toggleSearch()
	}

	placements := m.placements()
	for i := len(placements) - 1; i >= 0; i-- {
		p := placements[i]
		if !p.contains(msg.X, msg.Y) {
			continue
		}
		switch p.target {
		case focusSystem:
			cmd, _ := m.system.handleClick(m, m.zones, systemItems(), msg)
			return cmd
		case focusNetwork:
			cmd, _ := m.network.handleClick(m, m.zones, networkItems(m.store.Get()), msg)
			return cmd
		case focusControl:
			m.control.HandleClick(m.zones, m.store, m.bar.Audio, msg)
		}
		return nil
	}

	// A click on the bare desktop closes every dropdown.
	m.closeAll()
	return nil
}

// toggleMenu flips one dropdown and keeps the focus order in step.
func (m *Model) toggleMenu(menu menubar.Menu) {
	m.bar.Controller.Toggle(menu)
	if m.bar.Controller.Visibility().Open(menu) {
		switch menu {
		case menubar.SystemMenu:
			m.system.cursor = 0
			m.system.settle(systemItems())
		case menubar.NetworkMenu:
			m.network.cursor = 0
			m.network.settle(networkItems(m.store.Get()))
		}
	}
	m.syncFocus()
}

func (m *Model) toggleSearch() tea.Cmd {
	m.bar.ToggleSearch()
	var cmd tea.Cmd
	if m.desk.searchOpen {
		cmd = m.spotlight.Open()
	} else {
		m.spotlight.Close()
	}
	m.syncFocus()
	return cmd
}

func (m *Model) closeSearch() {
	if m.desk.searchOpen {
		m.desk.searchOpen = false
		m.spotlight.Close()
	}
	m.syncFocus()
}

// closeTop closes the most recently opened overlay.
func (m *Model) closeTop() tea.Cmd {
	top, ok := m.top()
	if !ok {
		return nil
	}
	if top == focusSearch {
		m.closeSearch()
		return nil
	}
	for _, mount := range m.bar.Controller.Overlays() {
		if focusFor(mount.Menu) == top {
			mount.Close()
		}
	}
	m.syncFocus()
	return nil
}

func (m *Model) closeAll() {
	for _, mount := range m.bar.Controller.Overlays() {
		mount.Close()
	}
	m.closeSearch()
}

func (m *Model) isOpen(f focusTarget) bool {
	vis := m.bar.Controller.Visibility()
	switch f {
	case focusSystem:
		return vis.System
	case focusNetwork:
		return vis.Network
	case focusControl:
		return vis.Control
	case focusSearch:
		return m.desk.searchOpen
	}
	return false
}

// syncFocus drops closed overlays from the focus order and appends newly
// opened ones.
func (m *Model) syncFocus() {
	next := make([]focusTarget, 0, 4)
	seen := map[focusTarget]bool{}
	for _, f := range m.focus {
		if m.isOpen(f) {
			next = append(next, f)
			seen[f] = true
		}
	}
	for _, f := range []focusTarget{focusSystem, focusNetwork, focusControl, focusSearch} {
		if !seen[f] && m.isOpen(f) {
			next = append(next, f)
		}
	}
	m.focus = next
}

func (m *Model) top() (focusTarget, bool) {
	if len(m.focus) == 0 {
		return 0, false
	}
	return m.focus[len(m.focus)-1], true
}

// power runs a power action through the bar's controller, which pauses the
// music first, then acts on the state the callback recorded.
func (m *Model) power(action menubar.PowerAction, ev tea.Msg) tea.Cmd {
	m.closeAll()
	m.bar.Controller.Power(action, ev)

	switch m.desk.state {
	case powerOff:
		return m.doQuit()
	case powerLocked:
		m.bar.Unmount()
	case powerBooting:
		m.bar.Unmount()
		return tea.Tick(bootDuration, func(time.Time) tea.Msg { return bootDoneMsg{} })
	}
	return nil
}

// doQuit performs clean shutdown: unmount the bar so the clock stops,
// clear the program ref, quit.
func (m *Model) doQuit() tea.Cmd {
	m.shutdown()
	return tea.Quit
}

func (m *Model) shutdown() {
	m.bar.Unmount()
	m.program.Clear()
}

// placements lays out every open overlay in focus order.
func (m Model) placements() []placement {
	mounts := map[focusTarget]menubar.Mount{}
	for _, mount := range m.bar.Controller.Overlays() {
		mounts[focusFor(mount.Menu)] = mount
	}

	var out []placement
	for _, f := range m.focus {
		var content string
		var h *anchor.Handle
		switch f {
		case focusSystem:
			content = m.system.view(m.zones, systemItems())
			h = mounts[f].Anchor
		case focusNetwork:
			content = m.network.view(m.zones, networkItems(m.store.Get()))
			h = mounts[f].Anchor
		case focusControl:
			content = m.control.View(m.zones, m.store.Get(), m.bar.Audio.State())
			h = mounts[f].Anchor
		case focusSearch:
			content = m.spotlight.View()
			h = m.desk.searchAnchor
		}
		w, hgt := blockSize(content)
		x, y := placeUnder(h, w, hgt, m.width, m.height)
		out = append(out, placement{target: f, content: content, x: x, y: y, w: w, h: hgt})
	}
	return out
}

// ── View ─────────────────────────────────────────────────────────

// View renders the desktop.
func (m Model) View() string {
	if m.width < minWidth || m.height < minHeight {
		sizeStr := fmt.Sprintf("%dx%d", m.width, m.height)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorYellow).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				"Terminal too small",
				lipgloss.NewStyle().Foreground(colorDim).Render(
					fmt.Sprintf("Need %dx%d, have ", minWidth, minHeight)+lipgloss.NewStyle().Bold(true).Render(sizeStr),
				),
			))
	}

	switch m.desk.state {
	case powerLocked:
		return m.renderLockScreen()
	case powerAsleep:
		return sleepStyle.Width(m.width).Height(m.height).Render("")
	case powerBooting:
		return m.renderBootSplash()
	case powerOff:
		return ""
	}

	bar := renderTopBar(newBarView(m.bar, m.desk.searchOpen), m.width)
	wallpaper := wallpaperStyle(m.store.Get().Brightness).
		Width(m.width).
		Height(m.height - 2).
		Render("")
	status := renderStatusBar(&m, m.width)

	view := lipgloss.JoinVertical(lipgloss.Left, bar, wallpaper, status)
	for _, p := range m.placements() {
		view = overlayAt(view, p.content, p.x, p.y, m.width)
	}

	switch {
	case m.showAbout:
		view = renderOverlay(view, renderAbout(m.bar.Title()), m.width, m.height)
	case m.showHelp:
		view = renderOverlay(view, renderHelp(m.width), m.width, m.height)
	}

	if m.zones != nil {
		return m.zones.Scan(view)
	}
	return view
}

func (m Model) now() time.Time {
	if m.cfg.Now != nil {
		return m.cfg.Now()
	}
	return time.Now()
}

func (m Model) renderLockScreen() string {
	now := m.now()
	body := lipgloss.JoinVertical(lipgloss.Center,
		lockClockStyle.Render(clock.FormatTime(now)),
		lockHintStyle.Render(clock.FormatDate(now)),
		"",
		lockHintStyle.Render(strings.Join([]string{"Press", keyStyle.Render("Enter"), "to log in"}, " ")),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderBootSplash() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		lockClockStyle.Render(glyphSystem),
		"",
		lockHintStyle.Render("Restarting..."),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
