package out

import (
	"focustrack/internal/modules/monitor/domain"
	monitorout "focustrack/internal/modules/monitor/port/out"
	timerin "focustrack/internal/modules/timer/port/in"
)

type TimerBridge struct {
	timer timerin.Usecase
}

func NewTimerBridge(timer timerin.Usecase) monitorout.EngineControl {
	return &TimerBridge{timer: timer}
}

func (b *TimerBridge) Interrupt() bool {
	return b.timer.Interrupt()
}

func (b *TimerBridge) Status() domain.EngineStatus {
	snap := b.timer.Snapshot()
	return domain.EngineStatus{AwaitingResume: snap.Distracted(), Distractions: snap.Distractions}
}
