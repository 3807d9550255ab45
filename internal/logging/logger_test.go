package logging

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestConsoleOnlyShowsWarnings(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Console: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Info("hidden")
	log.Warn("visible")
	if err := log.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "visible") {
		t.Fatalf("unexpected console output: %q", out)
	}
}

func TestFileCoreWritesJSON(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions(dir)
	opts.Console = nil
	log, err := New(opts)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Info("saved", zap.String("user", "u1"))
	_ = log.Sync()

	files, err := os.ReadDir(dir)
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one log file, got %v err=%v", files, err)
	}
}

func TestInvalidLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestGormLoggerTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core))
	fc := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(context.Background(), time.Now(), fc, nil)
	if logs.Len() != 0 {
		t.Fatalf("expected fast queries to be skipped at warn level")
	}
	gl.Trace(context.Background(), time.Now(), fc, errors.New("boom"))
	if logs.Len() != 1 || logs.All()[0].Message != "query failed" {
		t.Fatalf("expected failed query entry, got %+v", logs.All())
	}
	gl.LogMode(gormlogger.Info).Trace(context.Background(), time.Now(), fc, nil)
	if logs.Len() != 2 {
		t.Fatalf("expected info-level trace entry, got %d", logs.Len())
	}
}
