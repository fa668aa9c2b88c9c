package in

import "focustrack/internal/modules/monitor/dto"

type Usecase interface {
	Observe(input dto.SignalInput) (dto.ObserveOutput, error)
}
