package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	cfg, err := New(dir, "")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.ConfigPath != filepath.Join(dir, "config.yaml") {
		t.Fatalf("unexpected config path: %s", cfg.ConfigPath)
	}
	if cfg.DBPath != filepath.Join(dir, "focustrack.db") {
		t.Fatalf("unexpected db path: %s", cfg.DBPath)
	}
	if cfg.Settings.DefaultMinutes != 25 || cfg.Settings.Store != StoreFile {
		t.Fatalf("unexpected defaults: %+v", cfg.Settings)
	}
	if len(cfg.Settings.Categories) != 5 || cfg.Settings.Categories[0] != "Study" {
		t.Fatalf("unexpected categories: %v", cfg.Settings.Categories)
	}
	if cfg.ReminderDelay() != 750*time.Millisecond {
		t.Fatalf("unexpected reminder delay: %s", cfg.ReminderDelay())
	}
}

func TestNewRequiresDataDir(t *testing.T) {
	t.Parallel()
	if _, err := New("", ""); err == nil {
		t.Fatalf("expected error for empty data dir")
	}
}

func TestLoadClampsInvalidValues(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := "default_minutes: 90\ncategories: [Deep, Deep, '']\nstore: postgres\nreminder_delay_ms: -5\nlog_level: loud\nidle:\n  enabled: true\n  threshold_seconds: 0\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.DefaultMinutes != 25 {
		t.Fatalf("expected default minutes restored, got %d", s.DefaultMinutes)
	}
	if len(s.Categories) != 1 || s.Categories[0] != "Deep" {
		t.Fatalf("expected deduplicated categories, got %v", s.Categories)
	}
	if s.Store != StoreFile || s.ReminderDelayMS != 750 || s.LogLevel != "info" {
		t.Fatalf("unexpected clamped settings: %+v", s)
	}
	if !s.Idle.Enabled || s.Idle.ThresholdSeconds != 120 || s.Idle.PollSeconds != 5 {
		t.Fatalf("unexpected idle settings: %+v", s.Idle)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_minutes: [\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveRoundTripAndRelativePaths(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")
	s := DefaultSettings()
	s.Store = StoreSQLite
	s.LogFile = "logs/ft.log"
	s.HooksFile = "/etc/focustrack/hooks.yaml"
	if err := Save(path, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	cfg, err := New(dir, path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if cfg.Settings.Store != StoreSQLite {
		t.Fatalf("expected sqlite store, got %s", cfg.Settings.Store)
	}
	if cfg.LogPath() != filepath.Join(dir, "logs", "ft.log") {
		t.Fatalf("unexpected log path: %s", cfg.LogPath())
	}
	if cfg.HooksPath() != "/etc/focustrack/hooks.yaml" {
		t.Fatalf("unexpected hooks path: %s", cfg.HooksPath())
	}
}
