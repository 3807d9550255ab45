package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if cfg.Remote.DSN != nil || cfg.Dashboard.Days != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[remote]
dsn = "postgres://localhost/yks"
offline = true

[user]
id = "deniz"

[dashboard]
days = 21
exam-date = "2027-06-19"

[log]
level = "debug"
max-size = 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Remote.DSN == nil || *cfg.Remote.DSN != "postgres://localhost/yks" {
		t.Fatalf("unexpected dsn: %v", cfg.Remote.DSN)
	}
	if cfg.Remote.Offline == nil || !*cfg.Remote.Offline {
		t.Fatalf("expected offline flag")
	}
	if cfg.User.ID == nil || *cfg.User.ID != "deniz" {
		t.Fatalf("unexpected user id: %v", cfg.User.ID)
	}
	if cfg.Dashboard.Days == nil || *cfg.Dashboard.Days != 21 || *cfg.Dashboard.ExamDate != "2027-06-19" {
		t.Fatalf("unexpected dashboard config: %+v", cfg.Dashboard)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" || cfg.Log.MaxBackups != nil {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[remote]\nurl = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("YKS_DATABASE_URL=postgres://env/yks\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv(EnvDatabaseURL, "")
	if err := os.Unsetenv(EnvDatabaseURL); err != nil {
		t.Fatalf("unset: %v", err)
	}
	t.Setenv(EnvUserID, "from-env")

	if err := LoadEnv(filepath.Join(dir, "missing.env"), envPath); err != nil {
		t.Fatalf("load env: %v", err)
	}
	dsn := "postgres://file/yks"
	cfg := FileConfig{Remote: RemoteConfig{DSN: &dsn}}
	ApplyEnv(&cfg)
	if *cfg.Remote.DSN != "postgres://env/yks" {
		t.Fatalf("expected env dsn, got %q", *cfg.Remote.DSN)
	}
	if cfg.User.ID == nil || *cfg.User.ID != "from-env" {
		t.Fatalf("expected env user id, got %v", cfg.User.ID)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_CONFIG_HOME", "/conf")
	if got := DefaultDBPath(); got != filepath.Join("/data", "yks", "yks.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultLogDir(); got != filepath.Join("/data", "yks", "logs") {
		t.Fatalf("unexpected log dir %q", got)
	}
	if got := DefaultConfigPath(); got != filepath.Join("/conf", "yks", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
}
