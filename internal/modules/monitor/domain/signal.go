package domain

import "fmt"

// Signal is the host's report of the app's foreground state.
type Signal int

const (
	Active Signal = iota
	Inactive
	Background
)

func (s Signal) String() string {
	switch s {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	case Background:
		return "background"
	default:
		return "unknown"
	}
}

func ParseSignal(raw string) (Signal, error) {
	switch raw {
	case "active":
		return Active, nil
	case "inactive":
		return Inactive, nil
	case "background":
		return Background, nil
	default:
		return Active, fmt.Errorf("unknown signal %q", raw)
	}
}

type Transition int

const (
	None Transition = iota
	BecameInactive
	BecameActive
)

func (t Transition) String() string {
	switch t {
	case BecameInactive:
		return "became_inactive"
	case BecameActive:
		return "became_active"
	default:
		return "none"
	}
}

// Classify maps a pair of consecutive signals to a semantic transition.
// Inactive and Background are the same side; moving between them is None.
func Classify(prev, next Signal) Transition {
	wasActive := prev == Active
	isActive := next == Active
	switch {
	case wasActive && !isActive:
		return BecameInactive
	case !wasActive && isActive:
		return BecameActive
	default:
		return None
	}
}

type NoticeKind int

const (
	Distracted NoticeKind = iota
	ResumeReminder
)

func (k NoticeKind) String() string {
	if k == ResumeReminder {
		return "resume_reminder"
	}
	return "distracted"
}

type Notice struct {
	Kind         NoticeKind
	Distractions int
}

// EngineStatus is the part of the timer state the monitor needs.
type EngineStatus struct {
	AwaitingResume bool
	Distractions   int
}
