package in

import (
	monitordto "focustrack/internal/modules/monitor/dto"
	monitorin "focustrack/internal/modules/monitor/port/in"
)

// TUIHandler feeds terminal focus reports into the monitor.
type TUIHandler struct {
	usecase monitorin.Usecase
}

func NewTUIHandler(usecase monitorin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Focus() (monitordto.ObserveOutput, error) {
	return h.usecase.Observe(monitordto.SignalInput{Signal: monitordto.SignalActive, Source: "terminal"})
}

func (h TUIHandler) Blur() (monitordto.ObserveOutput, error) {
	return h.usecase.Observe(monitordto.SignalInput{Signal: monitordto.SignalInactive, Source: "terminal"})
}
