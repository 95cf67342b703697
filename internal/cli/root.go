// Package cli implements the menubar CLI commands.
package cli

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/watchfire-io/menubar/internal/config"
	"github.com/watchfire-io/menubar/internal/menubar"
	"github.com/watchfire-io/menubar/internal/models"
	"github.com/watchfire-io/menubar/internal/store"
	"github.com/watchfire-io/menubar/internal/tray"
	"github.com/watchfire-io/menubar/internal/tui"
)

// Flags of the root command.
var (
	flagTitle  string
	flagHide   bool
	flagMusic  string
	flagTray   bool
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:   "menubar",
	Short: "A desktop menu bar in your terminal",
	Long: `Menubar draws a desktop-style menu bar across the top of the terminal.

It carries a system menu with power actions, a Wi-Fi menu, a control
center with volume and brightness sliders, a search field and a clock.
Settings are read from settings.yaml and reloaded when the file changes.`,
	SilenceUsage: true,
	RunE:         runDesktop,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "settings directory (default $XDG_CONFIG_HOME/menubar)")
	rootCmd.Flags().StringVar(&flagTitle, "title", "", "title shown next to the system menu")
	rootCmd.Flags().BoolVar(&flagHide, "hide", false, "render the bar hidden")
	rootCmd.Flags().StringVar(&flagMusic, "music", "", "mp3 or wav file for the control center player")
	rootCmd.Flags().BoolVar(&flagTray, "tray", false, "mirror power actions in the OS system tray")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if flagConfig != "" {
			config.SetDir(flagConfig)
		}
	}

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}

func runDesktop(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	applyFlags(cmd, settings)

	if err := config.EnsureDir(); err != nil {
		return err
	}
	closer, err := config.LoggerInit(config.LogFile(), config.ParseLevel(settings.LogLevel))
	if err != nil {
		return err
	}
	defer closer.Close()

	slog.Info("desktop starting",
		slog.String("title", settings.Title),
		slog.Bool("tray", settings.Tray),
		slog.String("settings", config.SettingsFile()))

	opts := tui.Options{
		Settings:     settings,
		SettingsPath: config.SettingsFile(),
	}
	if settings.Tray {
		opts.Companions = append(opts.Companions, trayCompanion(settings.Title))
	}

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("desktop exited: %w", err)
	}
	slog.Info("desktop stopped")
	return nil
}

// applyFlags lets explicitly set flags override the settings file.
func applyFlags(cmd *cobra.Command, s *models.Settings) {
	flags := cmd.Flags()
	if flags.Changed("title") {
		s.Title = flagTitle
	}
	if flags.Changed("hide") {
		s.Hide = flagHide
	}
	if flags.Changed("music") {
		s.Audio.Music = flagMusic
	}
	if flags.Changed("tray") {
		s.Tray = flagTray
	}
}

// trayCompanion mirrors the desktop in the OS tray. Tray clicks are sent
// into the program as messages so power actions run on the update loop.
func trayCompanion(title string) tui.Companion {
	return func(send func(tea.Msg), st *store.Store) func() {
		changes := st.Subscribe()
		tray.Start(tray.Options{
			Title: title,
			OnPower: func(action menubar.PowerAction) {
				go send(tui.PowerMsg{Action: action})
			},
			OnQuit: func() {
				go send(tui.QuitMsg{})
			},
			Changes: changes,
			Initial: st.Get(),
		})
		return func() {
			tray.Quit()
			st.Unsubscribe(changes)
		}
	}
}
