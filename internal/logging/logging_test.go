package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "snakeboy.log")
	logger, closer, err := New(Options{Level: "debug", Prefix: "test", File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Debug("tick", "n", 3)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "tick") || !strings.Contains(string(data), "n=3") {
		t.Errorf("unexpected log contents %q", data)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warn.log")
	logger, closer, err := New(Options{Level: "warn", File: path})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	closer.Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("level filter not applied: %q", data)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, _, err := New(Options{Level: "chatty"}); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestNewDiscardsWithoutOutputs(t *testing.T) {
	logger, closer, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	logger.Error("nowhere")
	if err := closer.Close(); err != nil {
		t.Error(err)
	}
}
