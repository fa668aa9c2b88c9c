package out

import (
	"sync"
	"time"

	timerout "focustrack/internal/modules/timer/port/out"
)

// IntervalTickSource fires fn from its own goroutine every interval.
type IntervalTickSource struct {
	interval time.Duration
}

func NewIntervalTickSource(interval time.Duration) *IntervalTickSource {
	if interval <= 0 {
		interval = time.Second
	}
	return &IntervalTickSource{interval: interval}
}

func (s *IntervalTickSource) Arm(fn func()) timerout.TickHandle {
	h := &tickerHandle{done: make(chan struct{})}
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-h.done:
				return
			case <-ticker.C:
				select {
				case <-h.done:
					return
				default:
				}
				fn()
			}
		}
	}()
	return h
}

type tickerHandle struct {
	once sync.Once
	done chan struct{}
}

func (h *tickerHandle) Stop() {
	h.once.Do(func() { close(h.done) })
}
