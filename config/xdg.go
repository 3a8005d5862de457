// Package config loads the host tools' TOML configuration and resolves XDG paths.
package config

import (
	"os"
	"path/filepath"
)

const appName = "touchandgo"

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

// DefaultDBPath returns the default path for the flight log database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, "flights.db")
}

// DefaultParamsPath returns where the simulator keeps its parameter record.
func DefaultParamsPath() string {
	return filepath.Join(XDGDataHome(), appName, "parameters.bin")
}
