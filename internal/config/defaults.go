package config

import (
	"os"
	"path/filepath"

	"spssrun/internal/constants"
)

// DefaultConfigDir returns the XDG config directory for spssrun.
// Falls back to ~/.config/spssrun if XDG_CONFIG_HOME is not set.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, constants.AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return filepath.Join(".", ".config", constants.AppName)
	}
	return filepath.Join(home, ".config", constants.AppName)
}

// DefaultConfigPath returns the path of the persisted config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), constants.ConfigFileName)
}

// DefaultStateDir returns the XDG state directory for spssrun, used for
// per-invocation log files. Falls back to ~/.local/state/spssrun if
// XDG_STATE_HOME is not set.
func DefaultStateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, constants.AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".local", "state", constants.AppName)
	}
	return filepath.Join(home, ".local", "state", constants.AppName)
}
