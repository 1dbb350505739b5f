package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesLogFile(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}

	Info("scorer trained", "epochs", 40)
	Debug("filtered out at info level")

	data, err := os.ReadFile(LogPath(configDir))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "scorer trained") {
		t.Errorf("log file missing info entry: %q", out)
	}
	if strings.Contains(out, "filtered out") {
		t.Errorf("debug entry written without debug mode: %q", out)
	}
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	Debug("classified command", "action", "create")

	data, err := os.ReadFile(LogPath(configDir))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "classified command") {
		t.Errorf("debug entry missing in debug mode: %q", data)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// Must not panic.
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}

func TestLogPath(t *testing.T) {
	got := LogPath("/tmp/cfg")
	want := filepath.Join("/tmp/cfg", "logs", "tasklit.log")
	if got != want {
		t.Errorf("LogPath() = %q, want %q", got, want)
	}
}
