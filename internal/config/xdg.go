package config

import (
	"os"
	"path/filepath"
)

const appName = "yks"

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

// DefaultDBPath returns the default path for the local SQLite snapshot.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, "yks.db")
}

// DefaultLogDir returns the directory for rotating log files.
func DefaultLogDir() string {
	return filepath.Join(XDGDataHome(), appName, "logs")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultEnvPaths returns the .env files read at startup, first match wins per key.
func DefaultEnvPaths() []string {
	return []string{".env", filepath.Join(XDGConfigHome(), appName, ".env")}
}
