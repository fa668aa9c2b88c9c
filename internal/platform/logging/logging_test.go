package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "focustrack.log")

	logger, closer, err := New(Options{Level: "debug", Path: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Named("session").Debug("append", "id", "abc")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(raw)
	if !strings.Contains(line, "focustrack.session") || !strings.Contains(line, "id=abc") {
		t.Fatalf("unexpected log line: %q", line)
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()
	logger, closer, err := New(Options{Level: "chatty"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer closer.Close()
	if logger.IsDebug() {
		t.Fatalf("expected info level")
	}
	if !logger.IsInfo() {
		t.Fatalf("expected info enabled")
	}
}
