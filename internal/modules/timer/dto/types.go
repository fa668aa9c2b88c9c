package dto

import "time"

type SnapshotOutput struct {
	State             string
	PauseReason       string
	ConfiguredMinutes int
	RemainingMinutes  int
	RemainingSeconds  int
	Distractions      int
	Category          string
}

func (s SnapshotOutput) Running() bool    { return s.State == "running" }
func (s SnapshotOutput) Paused() bool     { return s.State == "paused" }
func (s SnapshotOutput) Idle() bool       { return s.State == "idle" }
func (s SnapshotOutput) Distracted() bool { return s.Paused() && s.PauseReason == "distraction" }

// ElapsedSeconds is how much of the configured duration has run.
func (s SnapshotOutput) ElapsedSeconds() int {
	return s.ConfiguredMinutes*60 - (s.RemainingMinutes*60 + s.RemainingSeconds)
}

type SummaryOutput struct {
	Category        string
	DurationSeconds int
	Minutes         int
	Distractions    int
	PerfectFocus    bool
	Completed       bool
	Date            time.Time
}

type EventKind string

const (
	EventChanged       EventKind = "changed"
	EventFinished      EventKind = "finished"
	EventSaved         EventKind = "saved"
	EventPersistFailed EventKind = "persist_failed"
	EventAdvisory      EventKind = "advisory"
)

type EventOutput struct {
	Kind     EventKind
	Snapshot SnapshotOutput
	Summary  *SummaryOutput
	RecordID string
	Err      error
}
