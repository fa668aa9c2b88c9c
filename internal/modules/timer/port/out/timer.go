package out

import (
	"context"

	"focustrack/internal/modules/timer/domain"
)

// TickSource produces the one-second countdown ticks.
type TickSource interface {
	// Arm starts delivering ticks to fn until the handle is stopped.
	Arm(fn func()) TickHandle
}

// TickHandle must be safe to Stop more than once and must not block on an
// in-flight fn call.
type TickHandle interface {
	Stop()
}

// SessionRecorder persists a finished interval and returns the assigned record id.
type SessionRecorder interface {
	Record(ctx context.Context, summary domain.Summary) (string, error)
}
