//go:build windows

package in

import (
	"context"
	"errors"

	"github.com/hashicorp/go-hclog"

	monitorin "focustrack/internal/modules/monitor/port/in"
)

type SignalSource struct {
	logger hclog.Logger
}

func NewSignalSource(_ monitorin.Usecase, logger hclog.Logger) *SignalSource {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SignalSource{logger: logger}
}

func (s *SignalSource) Run(ctx context.Context) error {
	return errors.New("focus signals are not supported on windows")
}
