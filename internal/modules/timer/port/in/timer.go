package in

import "focustrack/internal/modules/timer/dto"

// Usecase is the Timer View contract. Intent errors are advisory and never
// leave the timer in a broken state.
type Usecase interface {
	Snapshot() dto.SnapshotOutput
	Start() error
	Pause() error
	// Stop is the user-confirmed manual stop.
	Stop() (*dto.SummaryOutput, error)
	Reset() error
	AdjustDuration(delta int) error
	SelectCategory(name string) error
	Categories() []string
	// Interrupt reports a loss of focus and whether it was counted as a distraction.
	Interrupt() bool
	Subscribe(buffer int) (<-chan dto.EventOutput, func())
}
