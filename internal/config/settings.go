package config

import (
	"github.com/watchfire-io/menubar/internal/models"
)

// LoadSettings loads the settings from $XDG_CONFIG_HOME/menubar/settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	return LoadSettingsFrom(SettingsFile())
}

// LoadSettingsFrom loads settings from path over the defaults.
func LoadSettingsFrom(path string) (*models.Settings, error) {
	return LoadYAMLOrDefault(path, models.NewSettings)
}

// SaveSettings writes settings to $XDG_CONFIG_HOME/menubar/settings.yaml.
// Only `menubar settings init` calls this; runtime changes are not saved.
func SaveSettings(settings *models.Settings) error {
	return SaveYAML(SettingsFile(), settings)
}
