package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

const (
	EventSessionRecorded = "session_recorded"
	EventSessionCleared  = "session_cleared"

	DefaultTimeout = 3 * time.Second
	MaxTimeout     = 30 * time.Second
)

var (
	ErrHookDisabled     = errors.New("hook is disabled")
	ErrChecksumMismatch = errors.New("hook checksum mismatch")
	ErrHookTimeout      = errors.New("hook timeout")
	ErrDeliveryRejected = errors.New("hook rejected event")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest is one entry of hooks.yaml.
type Manifest struct {
	Name      string   `yaml:"name"`
	Version   string   `yaml:"version"`
	Binary    string   `yaml:"binary"`
	SHA256    string   `yaml:"sha256"`
	Enabled   bool     `yaml:"enabled"`
	Events    []string `yaml:"events"`
	TimeoutMS int      `yaml:"timeout_ms,omitempty"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("hook name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("hook version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("hook binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("hook sha256 must be lowercase 64-char hex")
	}
	if len(m.Events) == 0 {
		return fmt.Errorf("hook %s subscribes to no events", m.Name)
	}
	if m.TimeoutMS < 0 {
		return fmt.Errorf("hook timeout_ms must not be negative")
	}
	seen := map[string]struct{}{}
	for _, event := range m.Events {
		if err := ValidateEvent(event); err != nil {
			return err
		}
		if _, ok := seen[event]; ok {
			return fmt.Errorf("duplicate event: %s", event)
		}
		seen[event] = struct{}{}
	}
	return nil
}

func ValidateEvent(name string) error {
	switch name {
	case EventSessionRecorded, EventSessionCleared:
		return nil
	default:
		return fmt.Errorf("unknown event: %s", name)
	}
}

func (m Manifest) Subscribes(event string) bool {
	for _, e := range m.Events {
		if e == event {
			return true
		}
	}
	return false
}

// Timeout is the per-delivery budget, defaulted and capped.
func (m Manifest) Timeout() time.Duration {
	if m.TimeoutMS <= 0 {
		return DefaultTimeout
	}
	d := time.Duration(m.TimeoutMS) * time.Millisecond
	if d > MaxTimeout {
		return MaxTimeout
	}
	return d
}

type Metadata struct {
	Name    string
	Version string
	Events  []string
}

type Session struct {
	ID              string
	Category        string
	DurationSeconds int
	Distractions    int
	Date            time.Time
}

// Event is what a hook receives. Session is nil for session_cleared.
type Event struct {
	Name       string
	OccurredAt time.Time
	Session    *Session
}

func (e Event) Validate() error {
	if err := ValidateEvent(e.Name); err != nil {
		return err
	}
	if e.Name == EventSessionRecorded && e.Session == nil {
		return fmt.Errorf("%s event carries no session", e.Name)
	}
	return nil
}
