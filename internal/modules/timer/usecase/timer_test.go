package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"focustrack/internal/modules/timer/domain"
	"focustrack/internal/modules/timer/dto"
	timerout "focustrack/internal/modules/timer/port/out"
	"focustrack/internal/modules/timer/service"
	"focustrack/internal/modules/timer/usecase"
	apperrors "focustrack/internal/platform/errors"
)

type stepTicks struct{ fn func() }

func (s *stepTicks) Arm(fn func()) timerout.TickHandle {
	s.fn = fn
	return stopHandle{}
}

type stopHandle struct{}

func (stopHandle) Stop() {}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, domain.Summary) (string, error) {
	return "", errors.New("disk gone")
}

type clk struct{}

func (clk) Now() time.Time { return time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC) }

func TestInteractorStopSummaryAndEvents(t *testing.T) {
	t.Parallel()
	ticks := &stepTicks{}
	engine, err := service.NewEngine(service.EngineConfig{Minutes: 10, Categories: []string{"Study", "Reading"}}, ticks, failingRecorder{}, clk{}, nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	uc := usecase.NewInteractor(engine)
	events, cancel := uc.Subscribe(1024)
	defer cancel()

	if err := uc.SelectCategory("reading"); err != nil {
		t.Fatalf("select category: %v", err)
	}
	if err := uc.AdjustDuration(-5); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got := uc.Snapshot(); got.ConfiguredMinutes != 5 || got.Category != "Reading" || !got.Idle() {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if _, err := uc.Stop(); !errors.Is(err, apperrors.ErrStopRejected) {
		t.Fatalf("expected stop rejected, got %v", err)
	}

	if err := uc.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 90; i++ {
		ticks.fn()
	}
	if !uc.Interrupt() {
		t.Fatalf("expected interrupt counted while running")
	}
	if uc.Interrupt() {
		t.Fatalf("second interrupt while paused must not count")
	}
	snap := uc.Snapshot()
	if !snap.Distracted() || snap.ElapsedSeconds() != 90 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	summary, err := uc.Stop()
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if summary.DurationSeconds != 90 || summary.Minutes != 1 || summary.Distractions != 1 || summary.PerfectFocus {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	sawFinished, sawFailed := false, false
	deadline := time.After(2 * time.Second)
	for !sawFailed {
		select {
		case ev := <-events:
			switch ev.Kind {
			case dto.EventFinished:
				sawFinished = true
			case dto.EventPersistFailed:
				sawFailed = true
				if ev.Summary == nil || ev.Summary.Category != "Reading" {
					t.Fatalf("unexpected failed summary: %+v", ev.Summary)
				}
			}
		case <-deadline:
			t.Fatalf("timed out waiting for persist failure event")
		}
	}
	if !sawFinished {
		t.Fatalf("expected finished before persist failure")
	}
	engine.Close()
}
