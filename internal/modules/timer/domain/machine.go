package domain

import apperrors "focustrack/internal/platform/errors"

type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

type PauseReason int

const (
	PauseNone PauseReason = iota
	PauseUser
	PauseDistraction
)

func (r PauseReason) String() string {
	switch r {
	case PauseUser:
		return "user"
	case PauseDistraction:
		return "distraction"
	default:
		return "none"
	}
}

const (
	MinMinutes     = 1
	MaxMinutes     = 60
	DefaultMinutes = 25

	// MinRecordSeconds is the shortest manual stop that still produces a record.
	MinRecordSeconds = 60
)

// Machine is the countdown state. The zero value is not usable; build with NewMachine.
type Machine struct {
	ConfiguredMinutes int
	RemainingMinutes  int
	RemainingSeconds  int
	State             State
	Reason            PauseReason
	Distractions      int
	Category          string
}

// Draft is a finished interval ready to be recorded. Duration is in seconds.
type Draft struct {
	Category     string
	Duration     int
	Distractions int
	Completed    bool
}

type Outcome struct {
	// Ignored is set when the event does not apply in the current state.
	Ignored bool
	// Err carries an advisory notice; it never means the machine is broken.
	Err error
	// Draft is set on natural completion and on an accepted manual stop.
	Draft *Draft
	// Counted is set when an Interrupt incremented the distraction tally.
	Counted bool
}

func NewMachine(minutes int, category string) Machine {
	minutes = ClampMinutes(minutes)
	return Machine{
		ConfiguredMinutes: minutes,
		RemainingMinutes:  minutes,
		State:             Idle,
		Category:          category,
	}
}

func ClampMinutes(m int) int {
	if m < MinMinutes {
		return MinMinutes
	}
	if m > MaxMinutes {
		return MaxMinutes
	}
	return m
}

func (m Machine) RemainingTotal() int {
	return m.RemainingMinutes*60 + m.RemainingSeconds
}

func (m Machine) ElapsedSeconds() int {
	return m.ConfiguredMinutes*60 - m.RemainingTotal()
}

// Apply is the single transition function. It never mutates m.
func (m Machine) Apply(e Event) (Machine, Outcome) {
	switch ev := e.(type) {
	case Start:
		return m.start()
	case Pause:
		if m.State != Running {
			return m, Outcome{Ignored: true}
		}
		m.State = Paused
		m.Reason = PauseUser
		return m, Outcome{}
	case Tick:
		return m.tick()
	case Interrupt:
		if m.State != Running {
			return m, Outcome{Ignored: true}
		}
		m.State = Paused
		m.Reason = PauseDistraction
		m.Distractions++
		return m, Outcome{Counted: true}
	case Stop:
		return m.stop()
	case Reset:
		return m.idle(), Outcome{}
	case Adjust:
		if m.State != Idle {
			return m, Outcome{Ignored: true, Err: apperrors.ErrTimerBusy}
		}
		m.ConfiguredMinutes = ClampMinutes(m.ConfiguredMinutes + ev.Delta)
		return m.idle(), Outcome{}
	case SelectCategory:
		if m.State != Idle {
			return m, Outcome{Ignored: true, Err: apperrors.ErrTimerBusy}
		}
		m.Category = ev.Name
		return m, Outcome{}
	default:
		return m, Outcome{Ignored: true}
	}
}

func (m Machine) start() (Machine, Outcome) {
	switch m.State {
	case Idle:
		// Idle always shows the full configured dial, which becomes the locked duration.
		m = m.idle()
	case Paused:
	default:
		return m, Outcome{Ignored: true}
	}
	m.State = Running
	m.Reason = PauseNone
	return m, Outcome{}
}

func (m Machine) tick() (Machine, Outcome) {
	if m.State != Running || m.RemainingTotal() <= 0 {
		return m, Outcome{Ignored: true}
	}
	if m.RemainingSeconds == 0 {
		m.RemainingMinutes--
		m.RemainingSeconds = 59
	} else {
		m.RemainingSeconds--
	}
	if m.RemainingTotal() > 0 {
		return m, Outcome{}
	}
	draft := &Draft{
		Category:     m.Category,
		Duration:     m.ConfiguredMinutes * 60,
		Distractions: m.Distractions,
		Completed:    true,
	}
	return m.idle(), Outcome{Draft: draft}
}

func (m Machine) stop() (Machine, Outcome) {
	elapsed := m.ElapsedSeconds()
	if m.State == Idle || elapsed <= 0 {
		return m, Outcome{Err: apperrors.ErrStopRejected}
	}
	if elapsed < MinRecordSeconds {
		return m.idle(), Outcome{Err: apperrors.ErrSessionTooShort}
	}
	draft := &Draft{
		Category:     m.Category,
		Duration:     elapsed,
		Distractions: m.Distractions,
	}
	return m.idle(), Outcome{Draft: draft}
}

// idle returns to Idle with the dial reset to the configured duration.
func (m Machine) idle() Machine {
	m.State = Idle
	m.Reason = PauseNone
	m.RemainingMinutes = m.ConfiguredMinutes
	m.RemainingSeconds = 0
	m.Distractions = 0
	return m
}
