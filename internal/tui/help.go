package tui

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/menubar/internal/buildinfo"
)

type helpSection struct {
	title string
	keys  []helpKey
}

type helpKey struct {
	key  string
	desc string
}

var helpSections = []helpSection{
	{
		title: "Desktop",
		keys: []helpKey{
			{"F1", "System menu"},
			{"F2", "Wi-Fi menu"},
			{"F3", "Control center"},
			{"Ctrl+Space", "Spotlight search"},
			{"Esc", "Close the newest menu"},
			{"Ctrl+h", "Toggle help"},
			{"Ctrl+q", "Quit"},
		},
	},
	{
		title: "Menus",
		keys: []helpKey{
			{"↑/↓ j/k", "Navigate"},
			{"Enter", "Select"},
			{"Click", "Open a menu from the bar"},
		},
	},
	{
		title: "Control Center",
		keys: []helpKey{
			{"←/→", "Adjust volume or brightness"},
			{"Enter", "Toggle Wi-Fi or music"},
		},
	},
}

const helpKeyWidth = 12

func (sec helpSection) render() string {
	rows := []string{overlayTitleStyle.Render(sec.title)}
	for _, k := range sec.keys {
		rows = append(rows, keyStyle.Width(helpKeyWidth).Render(k.key)+hintStyle.Render(k.desc))
	}
	return strings.Join(rows, "\n")
}

// renderHelp lays the sections side by side when the terminal is wide
// enough and stacks them otherwise.
func renderHelp(width int) string {
	blocks := make([]string, len(helpSections))
	total := 0
	for i, sec := range helpSections {
		blocks[i] = sec.render()
		total += lipgloss.Width(blocks[i]) + 3
	}

	var body string
	if total+4 <= width {
		for i := range blocks[:len(blocks)-1] {
			blocks[i] = lipgloss.NewStyle().PaddingRight(3).Render(blocks[i])
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	} else {
		body = strings.Join(blocks, "\n\n")
	}
	return overlayStyle.Render(body + "\n\n" + overlayDimStyle.Render("Esc or Ctrl+h closes this"))
}

// renderAbout renders the About box opened from the system menu.
func renderAbout(title string) string {
	rows := []string{
		overlayTitleStyle.Render(glyphSystem + " " + title),
		fmt.Sprintf("Version %s (%s)", buildinfo.Version, buildinfo.Codename),
		overlayDimStyle.Render(fmt.Sprintf("%s/%s, %s", runtime.GOOS, runtime.GOARCH, runtime.Version())),
		overlayDimStyle.Render("Built " + buildinfo.BuildDate),
		"",
		overlayDimStyle.Render("Press Esc to close"),
	}
	return overlayStyle.Render(strings.Join(rows, "\n"))
}
