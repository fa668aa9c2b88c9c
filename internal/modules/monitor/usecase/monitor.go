package usecase

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"focustrack/internal/modules/monitor/domain"
	"focustrack/internal/modules/monitor/dto"
	monitorin "focustrack/internal/modules/monitor/port/in"
	"focustrack/internal/modules/monitor/service"
	apperrors "focustrack/internal/platform/errors"
)

type Interactor struct {
	monitor *service.Monitor
	logger  hclog.Logger
}

func NewInteractor(monitor *service.Monitor, logger hclog.Logger) monitorin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{monitor: monitor, logger: logger}
}

func (i *Interactor) Observe(input dto.SignalInput) (dto.ObserveOutput, error) {
	sig, err := domain.ParseSignal(input.Signal)
	if err != nil {
		return dto.ObserveOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	tr, counted := i.monitor.Observe(input.Source, sig)
	if tr != domain.None {
		i.logger.Debug("focus transition", "source", input.Source, "signal", sig, "transition", tr, "counted", counted)
	}
	return dto.ObserveOutput{Transition: tr.String(), Counted: counted}, nil
}
