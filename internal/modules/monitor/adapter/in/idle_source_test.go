package in

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	monitordto "focustrack/internal/modules/monitor/dto"
	"focustrack/internal/platform/idle"
)

type scriptedIdle struct {
	mu     sync.Mutex
	values []time.Duration
	err    error
}

func (s *scriptedIdle) IdleDuration() (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	if len(s.values) == 0 {
		return 0, nil
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v, nil
}

type recordingUsecase struct {
	mu      sync.Mutex
	signals []string
}

func (r *recordingUsecase) Observe(input monitordto.SignalInput) (monitordto.ObserveOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append(r.signals, input.Signal)
	return monitordto.ObserveOutput{}, nil
}

func (r *recordingUsecase) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.signals...)
}

func TestIdleSourceMapsThreshold(t *testing.T) {
	t.Parallel()
	uc := &recordingUsecase{}
	provider := &scriptedIdle{values: []time.Duration{time.Second, 3 * time.Minute, 10 * time.Second}}
	src := NewIdleSource(uc, provider, 2*time.Minute, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- src.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for len(uc.seen()) < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("expected three polls, got %v", uc.seen())
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
	got := uc.seen()[:3]
	want := []string{monitordto.SignalActive, monitordto.SignalInactive, monitordto.SignalActive}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("poll %d: expected %s got %s", i, want[i], got[i])
		}
	}
}

func TestIdleSourceStopsWhenUnsupported(t *testing.T) {
	t.Parallel()
	src := NewIdleSource(&recordingUsecase{}, &scriptedIdle{err: idle.ErrUnsupported}, time.Minute, time.Millisecond, nil)
	if err := src.Run(context.Background()); !errors.Is(err, idle.ErrUnsupported) {
		t.Fatalf("expected unsupported error, got %v", err)
	}
}
