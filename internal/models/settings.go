package models

// ScreenConfig is the screen size a window must cover to count as fullscreen.
// Zero values fall back to the largest window seen.
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AudioConfig holds playback settings.
type AudioConfig struct {
	Music  string `yaml:"music"` // mp3 or wav path; empty plays nothing
	Volume int    `yaml:"volume"`
}

// DisplayConfig holds display settings.
type DisplayConfig struct {
	Brightness int          `yaml:"brightness"`
	Screen     ScreenConfig `yaml:"screen"`
}

// Settings represents the menu bar settings.
// This corresponds to $XDG_CONFIG_HOME/menubar/settings.yaml.
type Settings struct {
	Version  int           `yaml:"version"`
	Title    string        `yaml:"title"`
	Hide     bool          `yaml:"hide"`
	Wifi     bool          `yaml:"wifi"`
	LogLevel string        `yaml:"log_level"` // "debug" | "info" | "warn" | "error"
	Tray     bool          `yaml:"tray"`
	Audio    AudioConfig   `yaml:"audio"`
	Display  DisplayConfig `yaml:"display"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:  1,
		Title:    "Finder",
		Hide:     false,
		Wifi:     true,
		LogLevel: "info",
		Audio: AudioConfig{
			Music:  "",
			Volume: 100,
		},
		Display: DisplayConfig{
			Brightness: 80,
		},
	}
}
