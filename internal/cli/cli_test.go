package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/menubar/internal/config"
	"github.com/watchfire-io/menubar/internal/models"
)

func execute(t *testing.T, args ...string) {
	t.Helper()
	t.Cleanup(func() {
		config.SetDir("")
		flagConfig = ""
		settingsInitForce = false
	})
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
}

func TestSettingsInitWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	execute(t, "--config", dir, "settings", "init")

	settings, err := config.LoadSettingsFrom(filepath.Join(dir, "settings.yaml"))
	require.NoError(t, err)
	require.Equal(t, models.NewSettings(), settings)
}

func TestSettingsInitKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Mine\n"), 0o600))

	execute(t, "--config", dir, "settings", "init")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "title: Mine\n", string(data))

	execute(t, "--config", dir, "settings", "init", "--force")
	settings, err := config.LoadSettingsFrom(path)
	require.NoError(t, err)
	require.Equal(t, "Finder", settings.Title)
}

func TestApplyFlagsOnlyOverridesChangedFlags(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&flagTitle, "title", "", "")
	cmd.Flags().BoolVar(&flagHide, "hide", false, "")
	cmd.Flags().StringVar(&flagMusic, "music", "", "")
	cmd.Flags().BoolVar(&flagTray, "tray", false, "")
	require.NoError(t, cmd.ParseFlags([]string{"--title", "Terminal", "--tray"}))

	s := models.NewSettings()
	s.Audio.Music = "song.mp3"
	applyFlags(cmd, s)

	require.Equal(t, "Terminal", s.Title)
	require.True(t, s.Tray)
	require.False(t, s.Hide)
	require.Equal(t, "song.mp3", s.Audio.Music, "unset flag keeps the file value")
}

func TestSettingsRows(t *testing.T) {
	s := models.NewSettings()
	s.LogLevel = "debug"
	rows := settingsRows(s)

	values := map[string]string{}
	for _, row := range rows {
		values[row[0]] = row[1]
	}
	require.Equal(t, "Finder", values["title"])
	require.Equal(t, "debug", values["log_level"])
	require.Equal(t, "(none)", values["audio.music"])
	require.Equal(t, "largest window seen", values["display.screen"])

	s.Display.Screen.Width, s.Display.Screen.Height = 120, 40
	require.Equal(t, "120x40", settingsRows(s)[len(rows)-1][1])
}
