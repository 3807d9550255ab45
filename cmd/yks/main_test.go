package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/yks/internal/config"
	"github.com/verte-zerg/yks/internal/model"
)

func TestParseSubject(t *testing.T) {
	tests := []struct {
		raw  string
		want model.ExamDetail
	}{
		{"Matematik:30:8:2", model.ExamDetail{Lesson: "Matematik", Correct: 30, Wrong: 8, Empty: 2}},
		{"AYT Fizik:10:3", model.ExamDetail{Lesson: "AYT Fizik", Correct: 10, Wrong: 3}},
	}
	for _, tt := range tests {
		got, err := parseSubject(tt.raw)
		if err != nil {
			t.Fatalf("parseSubject(%q): %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("parseSubject(%q) = %+v, want %+v", tt.raw, got, tt.want)
		}
	}
}

func TestParseSubjectRejectsBadInput(t *testing.T) {
	for _, raw := range []string{"Matematik", "Matematik:30", ":1:2", "Matematik:x:1", "Matematik:-1:0", "Matematik:1:2:3:4"} {
		if _, err := parseSubject(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestFindTopic(t *testing.T) {
	topics := []model.TopicProgress{{ID: "t1", Lesson: "Kimya", Completed: 2, Total: 5}}
	if got := findTopic(topics, "t1"); got.Lesson != "Kimya" {
		t.Fatalf("expected existing topic, got %+v", got)
	}
	if got := findTopic(topics, "t2"); got.ID != "t2" || got.Lesson != "" {
		t.Fatalf("expected new topic row, got %+v", got)
	}
}

func TestTrimAll(t *testing.T) {
	got := trimAll([]string{" Mol ", "", "Asit-Baz"})
	if len(got) != 2 || got[0] != "Mol" || got[1] != "Asit-Baz" {
		t.Fatalf("unexpected trim result %q", got)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if _, err := config.LoadConfig(path); err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
}

func TestLoadSettingsMergesFlagsOverConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(config.EnvUserID, "")
	t.Setenv(config.EnvDatabaseURL, "")
	cfgDir := filepath.Join(dir, "yks")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "[user]\nid = \"file-user\"\n\n[dashboard]\ndays = 10\nexam-date = \"2027-06-19\"\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	root := newRootCmd()
	if err := root.ParseFlags([]string{"--days", "5"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	s, err := loadSettings(root, true)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if s.user != "file-user" {
		t.Fatalf("expected config user, got %q", s.user)
	}
	if s.days != 5 {
		t.Fatalf("expected flag days to win, got %d", s.days)
	}
	if !s.offline {
		t.Fatalf("expected offline without a dsn")
	}
	if model.DateKey(s.examDate) != "2027-06-19" {
		t.Fatalf("unexpected exam date %s", model.DateKey(s.examDate))
	}
	if s.log.Console != nil {
		t.Fatalf("expected console logging disabled for the dashboard")
	}
}

func TestLoadSettingsRequiresUserOnline(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvUserID, "")
	t.Setenv(config.EnvDatabaseURL, "postgres://localhost/yks")

	root := newRootCmd()
	if err := root.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := loadSettings(root, false); err == nil {
		t.Fatalf("expected missing user error")
	}
}
