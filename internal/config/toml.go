// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Remote    RemoteConfig    `toml:"remote"`
	User      UserConfig      `toml:"user"`
	Dashboard DashboardConfig `toml:"dashboard"`
	Log       LogConfig       `toml:"log"`
}

// RemoteConfig maps the shared database settings.
type RemoteConfig struct {
	DSN     *string `toml:"dsn"`
	Offline *bool   `toml:"offline"`
}

// UserConfig selects the active user.
type UserConfig struct {
	ID *string `toml:"id"`
}

// DashboardConfig maps report and dashboard settings.
type DashboardConfig struct {
	Days     *int    `toml:"days"`
	ExamDate *string `toml:"exam-date"`
}

// LogConfig maps log level and rotation settings.
type LogConfig struct {
	Level      *string `toml:"level"`
	MaxSize    *int    `toml:"max-size"`
	MaxBackups *int    `toml:"max-backups"`
	MaxAge     *int    `toml:"max-age"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
