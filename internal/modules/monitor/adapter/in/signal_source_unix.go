//go:build !windows

package in

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"

	monitordto "focustrack/internal/modules/monitor/dto"
	monitorin "focustrack/internal/modules/monitor/port/in"
)

// SignalSource lets scripts report focus changes to a headless run:
// SIGUSR1 means the user went away, SIGUSR2 means they are back.
type SignalSource struct {
	usecase monitorin.Usecase
	logger  hclog.Logger
}

func NewSignalSource(usecase monitorin.Usecase, logger hclog.Logger) *SignalSource {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SignalSource{usecase: usecase, logger: logger}
}

// Run blocks until ctx is done.
func (s *SignalSource) Run(ctx context.Context) error {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, syscall.SIGUSR1, syscall.SIGUSR2)
	defer signal.Stop(ch)
	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-ch:
			input := monitordto.SignalInput{Signal: monitordto.SignalActive, Source: "signal"}
			if sig == syscall.SIGUSR1 {
				input.Signal = monitordto.SignalBackground
			}
			if _, err := s.usecase.Observe(input); err != nil {
				s.logger.Warn("observe signal failed", "signal", sig.String(), "error", err)
			}
		}
	}
}
