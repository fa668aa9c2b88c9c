package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	AppName        = "focustrack"
	configFileName = "config.yaml"
	dbFileName     = "focustrack.db"
	logFileName    = "focustrack.log"
	hooksFileName  = "hooks.yaml"

	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

var DefaultCategories = []string{"Study", "Coding", "Project", "Reading", "Other"}

type Idle struct {
	Enabled          bool `yaml:"enabled"`
	ThresholdSeconds int  `yaml:"threshold_seconds"`
	PollSeconds      int  `yaml:"poll_seconds"`
}

// Settings is the YAML-backed part of the configuration.
type Settings struct {
	DefaultMinutes  int      `yaml:"default_minutes"`
	Categories      []string `yaml:"categories"`
	Store           string   `yaml:"store"`
	ReminderDelayMS int      `yaml:"reminder_delay_ms"`
	LogLevel        string   `yaml:"log_level"`
	LogFile         string   `yaml:"log_file,omitempty"`
	Idle            Idle     `yaml:"idle"`
	HooksFile       string   `yaml:"hooks_file,omitempty"`
}

type Config struct {
	DataDir    string
	ConfigPath string
	DBPath     string
	Settings   Settings
}

func DefaultSettings() Settings {
	return Settings{
		DefaultMinutes:  25,
		Categories:      append([]string(nil), DefaultCategories...),
		Store:           StoreFile,
		ReminderDelayMS: 750,
		LogLevel:        "info",
		Idle: Idle{
			Enabled:          false,
			ThresholdSeconds: 120,
			PollSeconds:      5,
		},
	}
}

// DefaultDataDir resolves <user-config-dir>/focustrack.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// New resolves paths under dataDir and loads the settings file. A missing file yields
// defaults. An empty configPath means <dataDir>/config.yaml.
func New(dataDir, configPath string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	if configPath == "" {
		configPath = filepath.Join(dataDir, configFileName)
	}
	settings, err := Load(configPath)
	if err != nil {
		return Config{}, err
	}
	return Config{
		DataDir:    dataDir,
		ConfigPath: configPath,
		DBPath:     filepath.Join(dataDir, dbFileName),
		Settings:   settings,
	}, nil
}

func Load(path string) (Settings, error) {
	settings := DefaultSettings()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("parse config yaml: %w", err)
	}
	return settings.Validate(), nil
}

// Save writes settings as YAML, creating parent directories.
func Save(path string, settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	raw, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate replaces out-of-range values with defaults.
func (s Settings) Validate() Settings {
	def := DefaultSettings()
	if s.DefaultMinutes < 1 || s.DefaultMinutes > 60 {
		s.DefaultMinutes = def.DefaultMinutes
	}
	categories := make([]string, 0, len(s.Categories))
	seen := map[string]struct{}{}
	for _, c := range s.Categories {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}
	if len(categories) == 0 {
		categories = def.Categories
	}
	s.Categories = categories
	if s.Store != StoreFile && s.Store != StoreSQLite {
		s.Store = def.Store
	}
	if s.ReminderDelayMS < 0 {
		s.ReminderDelayMS = def.ReminderDelayMS
	}
	switch s.LogLevel {
	case "trace", "debug", "info", "warn", "error", "off":
	default:
		s.LogLevel = def.LogLevel
	}
	if s.Idle.ThresholdSeconds <= 0 {
		s.Idle.ThresholdSeconds = def.Idle.ThresholdSeconds
	}
	if s.Idle.PollSeconds <= 0 {
		s.Idle.PollSeconds = def.Idle.PollSeconds
	}
	return s
}

func (c Config) LogPath() string {
	if c.Settings.LogFile != "" {
		return c.resolve(c.Settings.LogFile)
	}
	return filepath.Join(c.DataDir, logFileName)
}

func (c Config) HooksPath() string {
	if c.Settings.HooksFile != "" {
		return c.resolve(c.Settings.HooksFile)
	}
	return filepath.Join(c.DataDir, hooksFileName)
}

func (c Config) ReminderDelay() time.Duration {
	return time.Duration(c.Settings.ReminderDelayMS) * time.Millisecond
}

func (c Config) IdleThreshold() time.Duration {
	return time.Duration(c.Settings.Idle.ThresholdSeconds) * time.Second
}

func (c Config) IdlePollInterval() time.Duration {
	return time.Duration(c.Settings.Idle.PollSeconds) * time.Second
}

func (c Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}
