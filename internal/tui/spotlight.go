package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/watchfire-io/menubar/internal/menubar"
	"github.com/watchfire-io/menubar/internal/store"
)

const spotlightWidth = 36

// command is something the search field can run.
type command struct {
	name string
	run  func(m *Model, ev tea.Msg) tea.Cmd
}

func openMenu(menu menubar.Menu) func(m *Model, _ tea.Msg) tea.Cmd {
	return func(m *Model, _ tea.Msg) tea.Cmd {
		if !m.bar.Controller.Visibility().Open(menu) {
			m.toggleMenu(menu)
		}
		return nil
	}
}

// spotlightCommands lists everything the search field can run.
func spotlightCommands() []command {
	return []command{
		{name: "System Menu", run: openMenu(menubar.SystemMenu)},
		{name: "Wi-Fi", run: openMenu(menubar.NetworkMenu)},
		{name: "Control Center", run: openMenu(menubar.ControlCenter)},
		{name: "Toggle Wi-Fi", run: func(m *Model, _ tea.Msg) tea.Cmd {
			m.store.Dispatch(store.ToggleWifi{})
			return nil
		}},
		{name: "Play/Pause Music", run: func(m *Model, _ tea.Msg) tea.Cmd {
			m.bar.Audio.Toggle()
			return nil
		}},
		{name: "Sleep", run: func(m *Model, ev tea.Msg) tea.Cmd { return m.power(menubar.ActionSleep, ev) }},
		{name: "Restart", run: func(m *Model, ev tea.Msg) tea.Cmd { return m.power(menubar.ActionRestart, ev) }},
		{name: "Shut Down", run: func(m *Model, ev tea.Msg) tea.Cmd { return m.power(menubar.ActionShutDown, ev) }},
		{name: "Log Out", run: func(m *Model, ev tea.Msg) tea.Cmd { return m.power(menubar.ActionLogOut, ev) }},
	}
}

// Spotlight is the search overlay. It belongs to the desktop, not the bar;
// the bar only supplies where it hangs from and the toggle.
type Spotlight struct {
	input   textinput.Model
	matches []command
	cursor  int
}

// NewSpotlight creates an empty search field.
func NewSpotlight() *Spotlight {
	ti := textinput.New()
	ti.Placeholder = "Spotlight Search"
	ti.Prompt = "⌕ "
	ti.CharLimit = 64
	ti.Width = spotlightWidth - 4

	s := &Spotlight{input: ti}
	s.filter()
	return s
}

// Open focuses the field and clears the previous query.
func (s *Spotlight) Open() tea.Cmd {
	s.input.SetValue("")
	s.filter()
	return s.input.Focus()
}

// Close blurs the field.
func (s *Spotlight) Close() {
	s.input.Blur()
}

// Query returns the current search text.
func (s *Spotlight) Query() string {
	return s.input.Value()
}

// Matches returns the names of commands matching the query.
func (s *Spotlight) Matches() []string {
	names := make([]string, len(s.matches))
	for i, c := range s.matches {
		names[i] = c.name
	}
	return names
}

func (s *Spotlight) filter() {
	q := strings.ToLower(strings.TrimSpace(s.input.Value()))
	s.matches = s.matches[:0]
	for _, c := range spotlightCommands() {
		if q == "" || strings.Contains(strings.ToLower(c.name), q) {
			s.matches = append(s.matches, c)
		}
	}
	s.cursor = min(s.cursor, max(len(s.matches)-1, 0))
}

// HandleKey processes keys while the field has focus. It returns the
// command to run when Enter picks one.
func (s *Spotlight) HandleKey(msg tea.KeyMsg) (*command, tea.Cmd) {
	switch {
	case key.Matches(msg, searchKeys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
		return nil, nil
	case key.Matches(msg, searchKeys.Down):
		if s.cursor < len(s.matches)-1 {
			s.cursor++
		}
		return nil, nil
	case key.Matches(msg, searchKeys.Select):
		if len(s.matches) == 0 {
			return nil, nil
		}
		c := s.matches[s.cursor]
		return &c, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.filter()
	return nil, cmd
}

// View renders the field and its results.
func (s *Spotlight) View() string {
	rows := []string{s.input.View(), ""}
	if len(s.matches) == 0 {
		rows = append(rows, overlayDimStyle.Render("No results"))
	}
	for i, c := range s.matches {
		line := padRight(" "+c.name, spotlightWidth-4)
		if i == s.cursor {
			rows = append(rows, menuCursorStyle.Render(line))
		} else {
			rows = append(rows, menuItemStyle.Render(line))
		}
	}
	return menuStyle.Width(spotlightWidth).Render(strings.Join(rows, "\n"))
}
