package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wordwise.log")
	cfg := DefaultConfig()
	cfg.File = path

	log, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("session finished")
	log.Debug("dropped at info level")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"session finished"`) {
		t.Errorf("log file missing info record: %s", out)
	}
	if strings.Contains(out, "dropped at info level") {
		t.Errorf("debug record written at info level: %s", out)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.File = filepath.Join(t.TempDir(), "x.log")
	cfg.Level = "loud"
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestDefaultFileUsesXDGState(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	got, err := DefaultFile()
	if err != nil {
		t.Fatalf("DefaultFile: %v", err)
	}
	if want := "/tmp/state/wordwise/wordwise.log"; got != want {
		t.Errorf("DefaultFile() = %q, want %q", got, want)
	}
}
