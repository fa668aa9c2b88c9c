package usecase_test

import (
	"errors"
	"testing"
	"time"

	"focustrack/internal/modules/monitor/domain"
	"focustrack/internal/modules/monitor/dto"
	"focustrack/internal/modules/monitor/service"
	"focustrack/internal/modules/monitor/usecase"
	apperrors "focustrack/internal/platform/errors"
)

type runningEngine struct{ interrupts int }

func (r *runningEngine) Interrupt() bool {
	r.interrupts++
	return true
}

func (r *runningEngine) Status() domain.EngineStatus {
	return domain.EngineStatus{AwaitingResume: true, Distractions: r.interrupts}
}

type nopNotifier struct{}

func (nopNotifier) Notify(domain.Notice) {}

type neverScheduler struct{}

func (neverScheduler) AfterFunc(time.Duration, func()) func() bool {
	return func() bool { return true }
}

func TestObserveParsesAndClassifies(t *testing.T) {
	t.Parallel()
	engine := &runningEngine{}
	uc := usecase.NewInteractor(service.NewMonitor(engine, nopNotifier{}, neverScheduler{}, 0, nil), nil)

	out, err := uc.Observe(dto.SignalInput{Signal: dto.SignalBackground, Source: "test"})
	if err != nil {
		t.Fatalf("observe: %v", err)
	}
	if out.Transition != "became_inactive" || !out.Counted {
		t.Fatalf("unexpected output: %+v", out)
	}
	out, err = uc.Observe(dto.SignalInput{Signal: dto.SignalActive, Source: "other"})
	if err != nil || out.Transition != "none" {
		t.Fatalf("another source cannot end the episode: %+v %v", out, err)
	}
	out, err = uc.Observe(dto.SignalInput{Signal: dto.SignalActive, Source: "test"})
	if err != nil || out.Transition != "became_active" || out.Counted {
		t.Fatalf("unexpected output: %+v %v", out, err)
	}

	if _, err := uc.Observe(dto.SignalInput{Signal: "minimized"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if engine.interrupts != 1 {
		t.Fatalf("expected one interrupt, got %d", engine.interrupts)
	}
}
