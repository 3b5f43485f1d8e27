// Package config provides loading and saving of the local job store.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/taskdeck/taskdeck/internal/constants"
)

// DataDirectory returns the per-user directory holding the job store.
//
// Locations:
//   - Windows: %APPDATA%\TaskDeck
//   - Unix: ~/.config/taskdeck
func DataDirectory() string {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), strings.ToLower(constants.AppName))
			}
			appData = filepath.Join(homeDir, "AppData", "Roaming")
		}
		return filepath.Join(appData, constants.AppName)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), strings.ToLower(constants.AppName))
		}
		return filepath.Join(homeDir, ".config", strings.ToLower(constants.AppName))
	}
	return filepath.Join(configDir, strings.ToLower(constants.AppName))
}

// DefaultStorePath returns the fixed path of the persisted job store.
func DefaultStorePath() string {
	return filepath.Join(DataDirectory(), constants.StoreFileName)
}

// EnsureDataDirectory creates the data directory if it doesn't exist.
func EnsureDataDirectory() error {
	return os.MkdirAll(DataDirectory(), 0700)
}
