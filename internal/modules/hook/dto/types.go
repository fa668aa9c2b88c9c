package dto

import "time"

const (
	EventSessionRecorded = "session_recorded"
	EventSessionCleared  = "session_cleared"
)

type SessionPayload struct {
	ID              string
	Category        string
	DurationSeconds int
	Distractions    int
	Date            time.Time
}

type EventInput struct {
	Name       string
	OccurredAt time.Time
	Session    *SessionPayload
}

type DeliveryResult struct {
	Hook      string
	Delivered bool
	Error     string
}

type HookInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
	Events  []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}
