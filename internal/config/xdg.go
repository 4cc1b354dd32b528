// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "launchdash"

// DefaultDataFile is the dataset looked up in the working directory when no
// source is configured.
const DefaultDataFile = "spacex_launch_dash.csv"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".log")
}

// DefaultDataPath resolves the dataset used when none is configured: the
// working-directory file if present, otherwise the copy under the data home.
func DefaultDataPath() string {
	if _, err := os.Stat(DefaultDataFile); err == nil {
		return DefaultDataFile
	}
	return filepath.Join(XDGDataHome(), appName, DefaultDataFile)
}
