// Package paths resolves per-user configuration and data directories.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "cmdpal"

// Environment variable overrides.
const (
	EnvConfigDir = "CMDPAL_CONFIG_DIR"
	EnvDataDir   = "CMDPAL_DATA_DIR"
)

// platformDir holds platform-detection functions overridable in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// ConfigDir returns the platform configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/cmdpal (fallback ~/.config/cmdpal)
// macOS:   ~/Library/Application Support/cmdpal
// Windows: %APPDATA%/cmdpal
func ConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// DataDir returns the platform application-data directory, where the
// command database lives.
//
// Linux:   $XDG_DATA_HOME/cmdpal (fallback ~/.local/share/cmdpal)
// macOS:   ~/Library/Application Support/cmdpal
// Windows: %APPDATA%/cmdpal
func DataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", appDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// ResolveConfigDir applies the precedence chain:
// flag > CMDPAL_CONFIG_DIR env > platform default.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return ConfigDir()
}

// ResolveDataDir applies the precedence chain:
// flag > config value > CMDPAL_DATA_DIR env > platform default.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DataDir()
}
