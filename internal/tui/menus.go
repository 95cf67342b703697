package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/watchfire-io/menubar/internal/menubar"
	"github.com/watchfire-io/menubar/internal/store"
)

// menuItem is one row of a dropdown menu. A nil run renders the row
// disabled; a separator has no label.
type menuItem struct {
	label     string
	value     string
	separator bool
	run       func(m *Model, ev tea.Msg) tea.Cmd
}

func separator() menuItem { return menuItem{separator: true} }

// listMenu is the cursor state of one dropdown.
type listMenu struct {
	menu   menubar.Menu
	cursor int
}

func (l *listMenu) move(items []menuItem, delta int) {
	if len(items) == 0 {
		return
	}
	for range items {
		l.cursor = (l.cursor + delta + len(items)) % len(items)
		if items[l.cursor].run != nil {
			return
		}
	}
}

// settle puts the cursor on the first enabled row at or after it.
func (l *listMenu) settle(items []menuItem) {
	if len(items) == 0 {
		l.cursor = 0
		return
	}
	l.cursor = min(max(l.cursor, 0), len(items)-1)
	if items[l.cursor].run == nil {
		l.move(items, 1)
	}
}

func (l *listMenu) itemID(i int) string {
	return fmt.Sprintf("item-%s-%d", l.menu, i)
}

func (l *listMenu) handleKey(m *Model, items []menuItem, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, menuKeys.Up):
		l.move(items, -1)
	case key.Matches(msg, menuKeys.Down):
		l.move(items, 1)
	case key.Matches(msg, menuKeys.Select):
		if l.cursor < len(items) && items[l.cursor].run != nil {
			return items[l.cursor].run(m, msg)
		}
	}
	return nil
}

// handleClick runs the row under the pointer. It reports whether the click
// landed on a row.
func (l *listMenu) handleClick(m *Model, zones *zone.Manager, items []menuItem, msg tea.MouseMsg) (tea.Cmd, bool) {
	if zones == nil {
		return nil, false
	}
	for i, item := range items {
		if item.run == nil || !hit(zones, l.itemID(i), msg) {
			continue
		}
		l.cursor = i
		return item.run(m, msg), true
	}
	return nil, false
}

// hit reports whether msg falls inside a zone recorded on the last scan.
func hit(zones *zone.Manager, id string, msg tea.MouseMsg) bool {
	if zones == nil {
		return false
	}
	info := zones.Get(id)
	return info != nil && info.InBounds(msg)
}

func (l *listMenu) view(zones *zone.Manager, items []menuItem) string {
	width := 0
	for _, item := range items {
		w := lipgloss.Width(item.label)
		if item.value != "" {
			w += 2 + lipgloss.Width(item.value)
		}
		width = max(width, w)
	}

	rows := make([]string, 0, len(items))
	for i, item := range items {
		if item.separator {
			rows = append(rows, menuSeparatorStyle.Render(strings.Repeat("─", width+2)))
			continue
		}
		line := item.label
		if item.value != "" {
			gap := width - lipgloss.Width(item.label) - lipgloss.Width(item.value)
			line += strings.Repeat(" ", gap) + item.value
		}
		line = padRight(line, width)

		style := menuItemStyle
		switch {
		case item.run == nil:
			style = overlayDimStyle
		case i == l.cursor:
			style = menuCursorStyle
		}
		row := style.Render(" " + line + " ")
		if zones != nil {
			row = zones.Mark(l.itemID(i), row)
		}
		rows = append(rows, row)
	}
	return menuStyle.Render(strings.Join(rows, "\n"))
}

func powerItem(label string, action menubar.PowerAction) menuItem {
	return menuItem{
		label: label,
		run: func(m *Model, ev tea.Msg) tea.Cmd {
			return m.power(action, ev)
		},
	}
}

// systemItems are the rows of the system menu.
func systemItems() []menuItem {
	return []menuItem{
		{label: "About This Desktop", run: func(m *Model, _ tea.Msg) tea.Cmd {
			m.bar.Controller.Close(menubar.SystemMenu)
			m.syncFocus()
			m.showAbout = true
			return nil
		}},
		separator(),
		powerItem("Sleep", menubar.ActionSleep),
		powerItem("Restart...", menubar.ActionRestart),
		powerItem("Shut Down...", menubar.ActionShutDown),
		separator(),
		powerItem("Lock Screen", menubar.ActionLogOut),
		powerItem("Log Out...", menubar.ActionLogOut),
	}
}

// networkItems are the rows of the Wi-Fi menu.
func networkItems(s store.State) []menuItem {
	return []menuItem{
		{label: "Wi-Fi", value: renderToggle(s.Wifi), run: func(m *Model, _ tea.Msg) tea.Cmd {
			m.store.Dispatch(store.ToggleWifi{})
			return nil
		}},
		separator(),
		{label: "Network Preferences..."},
	}
}

func renderToggle(on bool) string {
	if on {
		return toggleOnStyle.Render("● On")
	}
	return toggleOffStyle.Render("○ Off")
}
