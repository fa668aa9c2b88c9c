package out

import "focustrack/internal/modules/monitor/domain"

// EngineControl is the timer as seen by the monitor.
type EngineControl interface {
	// Interrupt reports whether the timer was running and counted a distraction.
	Interrupt() bool
	Status() domain.EngineStatus
}

type Notifier interface {
	Notify(notice domain.Notice)
}
