package domain

import "time"

// Summary is the completion summary shown to the user and handed to the recorder.
type Summary struct {
	Category     string
	Duration     int
	Distractions int
	Completed    bool
	Date         time.Time
}

func (d Draft) Stamp(at time.Time) Summary {
	return Summary{
		Category:     d.Category,
		Duration:     d.Duration,
		Distractions: d.Distractions,
		Completed:    d.Completed,
		Date:         at,
	}
}

func (s Summary) Minutes() int {
	return s.Duration / 60
}

func (s Summary) PerfectFocus() bool {
	return s.Distractions == 0
}

type NoticeKind int

const (
	// Changed carries the machine after any applied event.
	Changed NoticeKind = iota
	// Finished carries the summary as soon as the machine returns to Idle.
	Finished
	// Saved follows Finished once the recorder accepted the summary.
	Saved
	// PersistFailed follows Finished when the recorder failed. Not retried.
	PersistFailed
	// Advisory carries a rejected or ignored intent.
	Advisory
)

func (k NoticeKind) String() string {
	switch k {
	case Changed:
		return "changed"
	case Finished:
		return "finished"
	case Saved:
		return "saved"
	case PersistFailed:
		return "persist_failed"
	case Advisory:
		return "advisory"
	default:
		return "unknown"
	}
}

type Notice struct {
	Kind     NoticeKind
	Machine  Machine
	Summary  *Summary
	RecordID string
	Err      error
}
