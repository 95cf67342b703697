package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/menubar/internal/config"
	"github.com/watchfire-io/menubar/internal/models"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Show the menu bar settings",
	Long: `Show the settings the desktop starts with.

Values come from settings.yaml; keys missing from the file use their
defaults. Edits to the file are picked up by a running desktop.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the menu bar settings",
	RunE:  runSettingsShow,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.SettingsFile())
	},
}

var settingsInitForce bool

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the defaults",
	RunE:  runSettingsInit,
}

func init() {
	settingsInitCmd.Flags().BoolVarP(&settingsInitForce, "force", "f", false, "overwrite an existing file")
	settingsCmd.AddCommand(settingsInitCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsShowCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	path := config.SettingsFile()
	source := "defaults"
	if config.FileExists(path) {
		source = path
	}
	fmt.Println(styleBrand.Render("Menubar settings") + " " + styleHint.Render("("+source+")"))
	for _, row := range settingsRows(settings) {
		fmt.Printf("  %s %s\n", styleLabel.Render(fmt.Sprintf("%-18s", row[0]+":")), styleValue.Render(row[1]))
	}
	return nil
}

func settingsRows(s *models.Settings) [][2]string {
	music := s.Audio.Music
	if music == "" {
		music = "(none)"
	}
	screen := "largest window seen"
	if s.Display.Screen.Width > 0 && s.Display.Screen.Height > 0 {
		screen = fmt.Sprintf("%dx%d", s.Display.Screen.Width, s.Display.Screen.Height)
	}
	return [][2]string{
		{"title", s.Title},
		{"hide", strconv.FormatBool(s.Hide)},
		{"wifi", strconv.FormatBool(s.Wifi)},
		{"log_level", s.LogLevel},
		{"tray", strconv.FormatBool(s.Tray)},
		{"audio.music", music},
		{"audio.volume", fmt.Sprintf("%d%%", s.Audio.Volume)},
		{"display.brightness", fmt.Sprintf("%d%%", s.Display.Brightness)},
		{"display.screen", screen},
	}
}

func runSettingsInit(cmd *cobra.Command, args []string) error {
	path := config.SettingsFile()
	if config.FileExists(path) && !settingsInitForce {
		fmt.Println(styleWarning.Render("Settings file already exists: ") + path)
		fmt.Println(styleHint.Render("Use --force to overwrite it."))
		return nil
	}
	if err := config.SaveSettings(models.NewSettings()); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	fmt.Println(styleSuccess.Render("Wrote ") + path)
	return nil
}
