package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"focustrack/internal/modules/timer/domain"
	timerout "focustrack/internal/modules/timer/port/out"
	"focustrack/internal/platform/clock"
	apperrors "focustrack/internal/platform/errors"
	"focustrack/internal/platform/slug"
)

const recordTimeout = 15 * time.Second

type EngineConfig struct {
	Minutes    int
	Categories []string
}

// Engine owns the single timer machine of the process. Every event, whether a
// tick, an intent or an interrupt, is applied under mu.
type Engine struct {
	mu      sync.Mutex
	machine domain.Machine
	handle  timerout.TickHandle
	gen     uint64
	closed  bool

	categories []string
	ticks      timerout.TickSource
	recorder   timerout.SessionRecorder
	clock      clock.Clock
	logger     hclog.Logger

	subMu   sync.Mutex
	subs    map[int]chan domain.Notice
	nextSub int

	persisting sync.WaitGroup
}

func NewEngine(cfg EngineConfig, ticks timerout.TickSource, recorder timerout.SessionRecorder, clk clock.Clock, logger hclog.Logger) (*Engine, error) {
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("%w: at least one category is required", apperrors.ErrInvalidInput)
	}
	if ticks == nil {
		return nil, fmt.Errorf("%w: tick source is required", apperrors.ErrInvalidInput)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	minutes := cfg.Minutes
	if minutes == 0 {
		minutes = domain.DefaultMinutes
	}
	return &Engine{
		machine:    domain.NewMachine(minutes, cfg.Categories[0]),
		categories: append([]string(nil), cfg.Categories...),
		ticks:      ticks,
		recorder:   recorder,
		clock:      clk,
		logger:     logger,
		subs:       map[int]chan domain.Notice{},
	}, nil
}

func (e *Engine) Snapshot() domain.Machine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine
}

func (e *Engine) Categories() []string {
	return append([]string(nil), e.categories...)
}

// Apply runs one event through the machine. The returned summary is set when
// the event finished an interval.
func (e *Engine) Apply(ev domain.Event) (domain.Outcome, *domain.Summary) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyLocked(ev)
}

func (e *Engine) SelectCategory(name string) (domain.Outcome, error) {
	canonical, ok := slug.Match(name, e.categories)
	if !ok {
		err := fmt.Errorf("%w: %q", apperrors.ErrUnknownCategory, name)
		e.mu.Lock()
		e.publish(domain.Notice{Kind: domain.Advisory, Machine: e.machine, Err: err})
		e.mu.Unlock()
		return domain.Outcome{Ignored: true, Err: err}, err
	}
	out, _ := e.Apply(domain.SelectCategory{Name: canonical})
	return out, out.Err
}

// Interrupt reports whether the loss of focus was counted.
func (e *Engine) Interrupt() bool {
	out, _ := e.Apply(domain.Interrupt{})
	return out.Counted
}

func (e *Engine) applyLocked(ev domain.Event) (domain.Outcome, *domain.Summary) {
	if e.closed {
		return domain.Outcome{Ignored: true}, nil
	}
	prev := e.machine
	next, out := prev.Apply(ev)
	e.machine = next

	if prev.State != domain.Running && next.State == domain.Running {
		e.armLocked()
	}
	if prev.State == domain.Running && next.State != domain.Running {
		e.disarmLocked()
	}

	if _, isTick := ev.(domain.Tick); !isTick || out.Draft != nil {
		e.logger.Debug("timer event", "event", domain.EventName(ev), "from", prev.State, "to", next.State, "ignored", out.Ignored)
	}

	if out.Err != nil {
		e.publish(domain.Notice{Kind: domain.Advisory, Machine: next, Err: out.Err})
	}
	if !out.Ignored && next != prev {
		e.publish(domain.Notice{Kind: domain.Changed, Machine: next})
	}

	if out.Draft == nil {
		return out, nil
	}
	summary := out.Draft.Stamp(e.clock.Now())
	e.logger.Info("session finished", "category", summary.Category, "duration", summary.Duration, "distractions", summary.Distractions, "completed", summary.Completed)
	e.publish(domain.Notice{Kind: domain.Finished, Machine: next, Summary: &summary})
	e.persistAsync(summary)
	return out, &summary
}

func (e *Engine) armLocked() {
	e.gen++
	gen := e.gen
	e.handle = e.ticks.Arm(func() { e.onTick(gen) })
}

func (e *Engine) disarmLocked() {
	if e.handle != nil {
		e.handle.Stop()
		e.handle = nil
	}
	e.gen++
}

func (e *Engine) onTick(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen || e.handle == nil {
		return
	}
	e.applyLocked(domain.Tick{})
}

func (e *Engine) persistAsync(summary domain.Summary) {
	if e.recorder == nil {
		return
	}
	e.persisting.Add(1)
	go func() {
		defer e.persisting.Done()
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		id, err := e.recorder.Record(ctx, summary)
		if err != nil {
			e.logger.Error("session not saved", "category", summary.Category, "duration", summary.Duration, "error", err)
			e.publish(domain.Notice{Kind: domain.PersistFailed, Machine: e.Snapshot(), Summary: &summary, Err: err})
			return
		}
		e.publish(domain.Notice{Kind: domain.Saved, Machine: e.Snapshot(), Summary: &summary, RecordID: id})
	}()
}

// Subscribe returns a buffered notice channel. Delivery never blocks the
// engine; a full subscriber misses notices.
func (e *Engine) Subscribe(buffer int) (<-chan domain.Notice, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan domain.Notice, buffer)
	e.subMu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = ch
	e.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.subMu.Lock()
			defer e.subMu.Unlock()
			if sub, ok := e.subs[id]; ok {
				delete(e.subs, id)
				close(sub)
			}
		})
	}
}

func (e *Engine) publish(n domain.Notice) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- n:
		default:
		}
	}
}

// Close releases the tick handle, waits for in-flight saves and closes every
// subscription. Further events are ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.disarmLocked()
	e.mu.Unlock()

	e.persisting.Wait()

	e.subMu.Lock()
	defer e.subMu.Unlock()
	for id, ch := range e.subs {
		delete(e.subs, id)
		close(ch)
	}
}
