package in

import (
	timerdto "focustrack/internal/modules/timer/dto"
	timerin "focustrack/internal/modules/timer/port/in"
)

// TUIHandler is the intent surface used by the terminal views.
type TUIHandler struct {
	usecase timerin.Usecase
}

func NewTUIHandler(usecase timerin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Snapshot() timerdto.SnapshotOutput {
	return h.usecase.Snapshot()
}

func (h TUIHandler) Categories() []string {
	return h.usecase.Categories()
}

// Toggle starts an idle or paused timer and pauses a running one.
func (h TUIHandler) Toggle() error {
	if h.usecase.Snapshot().Running() {
		return h.usecase.Pause()
	}
	return h.usecase.Start()
}

func (h TUIHandler) Stop() (*timerdto.SummaryOutput, error) {
	return h.usecase.Stop()
}

func (h TUIHandler) Reset() error {
	return h.usecase.Reset()
}

func (h TUIHandler) Adjust(delta int) error {
	return h.usecase.AdjustDuration(delta)
}

func (h TUIHandler) SelectCategory(name string) error {
	return h.usecase.SelectCategory(name)
}

func (h TUIHandler) Subscribe(buffer int) (<-chan timerdto.EventOutput, func()) {
	return h.usecase.Subscribe(buffer)
}

// CLIHandler backs the headless run command.
type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Begin configures and starts a session in one step.
func (h CLIHandler) Begin(category string, minutes int) error {
	if category != "" {
		if err := h.usecase.SelectCategory(category); err != nil {
			return err
		}
	}
	if minutes > 0 {
		current := h.usecase.Snapshot().ConfiguredMinutes
		if err := h.usecase.AdjustDuration(minutes - current); err != nil {
			return err
		}
	}
	return h.usecase.Start()
}

func (h CLIHandler) Snapshot() timerdto.SnapshotOutput {
	return h.usecase.Snapshot()
}

func (h CLIHandler) Categories() []string {
	return h.usecase.Categories()
}

func (h CLIHandler) Resume() error {
	return h.usecase.Start()
}

func (h CLIHandler) Pause() error {
	return h.usecase.Pause()
}

func (h CLIHandler) Stop() (*timerdto.SummaryOutput, error) {
	return h.usecase.Stop()
}

func (h CLIHandler) Reset() error {
	return h.usecase.Reset()
}

func (h CLIHandler) Subscribe(buffer int) (<-chan timerdto.EventOutput, func()) {
	return h.usecase.Subscribe(buffer)
}
