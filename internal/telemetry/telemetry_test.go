package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWithNilConfigUsesDefaults(t *testing.T) {
	log, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil) returned error: %v", err)
	}
	if log == nil {
		t.Fatalf("expected a logger")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud"})
	if err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
}

func TestNewWithFileWritesThroughRotator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parse.log")
	cfg := DefaultConfig()
	cfg.FileName = path

	log, err := New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	log.Info("hello")
	_ = log.Sync()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
}

func TestDefaultConfigLevel(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Fatalf("expected info default level, got %q", cfg.Level)
	}
}
