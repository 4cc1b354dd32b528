package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "launchdash.log")
	logger, err := New(Options{Path: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Named("dashboard").Info("dataset loaded", zap.Int("records", 56))
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"msg":"dataset loaded"`, `"records":56`, `"logger":"dashboard"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in log output, got: %s", want, out)
		}
	}
	if strings.Contains(out, "hidden at info level") {
		t.Fatalf("debug entry written at info level")
	}
}

func TestNewVerbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launchdash.log")
	logger, err := New(Options{Path: path, Verbose: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Debug("recompute")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "recompute") {
		t.Fatalf("expected debug entry, got: %s", data)
	}
}

func TestNewWithoutPathIsNop(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger.Core().Enabled(zap.ErrorLevel) {
		t.Fatalf("expected a no-op logger")
	}
}
