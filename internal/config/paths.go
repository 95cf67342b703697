// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// DirName is the name of the menu bar directory under XDG_CONFIG_HOME.
	DirName = "menubar"
)

// File names
const (
	SettingsFileName = "settings.yaml"
	LogFileName      = "menubar.log"
)

// overrideDir replaces the XDG location, used by --config and tests.
var overrideDir string

// SetDir points every path helper at dir instead of the XDG location.
func SetDir(dir string) {
	overrideDir = dir
}

// Dir returns the menu bar config directory ($XDG_CONFIG_HOME/menubar/).
func Dir() string {
	if overrideDir != "" {
		return overrideDir
	}
	return filepath.Join(xdg.ConfigHome, DirName)
}

// SettingsFile returns the path to the settings.yaml file.
func SettingsFile() string {
	return filepath.Join(Dir(), SettingsFileName)
}

// LogFile returns the path to the log file.
func LogFile() string {
	return filepath.Join(Dir(), LogFileName)
}

// EnsureDir creates the config directory if it doesn't exist.
func EnsureDir() error {
	return os.MkdirAll(Dir(), 0o750)
}
