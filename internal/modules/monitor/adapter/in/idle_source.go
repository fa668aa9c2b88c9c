package in

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-hclog"

	monitordto "focustrack/internal/modules/monitor/dto"
	monitorin "focustrack/internal/modules/monitor/port/in"
	"focustrack/internal/platform/idle"
)

// IdleSource treats desktop idle time past a threshold as leaving the app.
type IdleSource struct {
	usecase   monitorin.Usecase
	provider  idle.Provider
	threshold time.Duration
	interval  time.Duration
	logger    hclog.Logger
}

func NewIdleSource(usecase monitorin.Usecase, provider idle.Provider, threshold, interval time.Duration, logger hclog.Logger) *IdleSource {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &IdleSource{usecase: usecase, provider: provider, threshold: threshold, interval: interval, logger: logger}
}

// Run polls until ctx is done. It returns idle.ErrUnsupported when the platform
// cannot report idle time.
func (s *IdleSource) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		if err := s.poll(); err != nil {
			if errors.Is(err, idle.ErrUnsupported) {
				s.logger.Info("idle detection disabled", "reason", err)
				return err
			}
			s.logger.Warn("idle poll failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (s *IdleSource) poll() error {
	d, err := s.provider.IdleDuration()
	if err != nil {
		return err
	}
	signal := monitordto.SignalActive
	if d >= s.threshold {
		signal = monitordto.SignalInactive
	}
	_, err = s.usecase.Observe(monitordto.SignalInput{Signal: signal, Source: "idle"})
	return err
}
