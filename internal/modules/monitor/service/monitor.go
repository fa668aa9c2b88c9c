package service

import (
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"focustrack/internal/modules/monitor/domain"
	monitorout "focustrack/internal/modules/monitor/port/out"
	"focustrack/internal/platform/clock"
)

const DefaultReminderDelay = 750 * time.Millisecond

// Monitor turns host focus signals into distractions and reminders. An episode
// opens when a loss of focus was counted and closes when its reminder fires.
// Each source keeps its own last signal; the app is active only while every
// source reports Active.
type Monitor struct {
	mu      sync.Mutex
	sources map[string]domain.Signal
	episode bool
	cancel  func() bool
	gen     uint64

	delay     time.Duration
	engine    monitorout.EngineControl
	notifier  monitorout.Notifier
	scheduler clock.Scheduler
	logger    hclog.Logger
}

func NewMonitor(engine monitorout.EngineControl, notifier monitorout.Notifier, scheduler clock.Scheduler, delay time.Duration, logger hclog.Logger) *Monitor {
	if delay < 0 {
		delay = DefaultReminderDelay
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Monitor{
		sources:   map[string]domain.Signal{},
		delay:     delay,
		engine:    engine,
		notifier:  notifier,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Observe records sig for source and returns the transition of the combined
// state and whether it was counted as a distraction.
func (m *Monitor) Observe(source string, sig domain.Signal) (domain.Transition, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.combinedLocked()
	m.sources[source] = sig
	tr := domain.Classify(prev, m.combinedLocked())
	switch tr {
	case domain.BecameInactive:
		return tr, m.onInactiveLocked()
	case domain.BecameActive:
		m.onActiveLocked()
	}
	return tr, false
}

func (m *Monitor) combinedLocked() domain.Signal {
	combined := domain.Active
	for _, sig := range m.sources {
		if sig == domain.Background {
			return domain.Background
		}
		if sig != domain.Active {
			combined = sig
		}
	}
	return combined
}

func (m *Monitor) onInactiveLocked() bool {
	m.cancelReminderLocked()
	if !m.engine.Interrupt() {
		return false
	}
	m.episode = true
	status := m.engine.Status()
	m.logger.Info("distraction counted", "distractions", status.Distractions)
	m.notifier.Notify(domain.Notice{Kind: domain.Distracted, Distractions: status.Distractions})
	return true
}

func (m *Monitor) onActiveLocked() {
	if !m.episode {
		return
	}
	m.cancelReminderLocked()
	gen := m.gen
	m.cancel = m.scheduler.AfterFunc(m.delay, func() { m.fireReminder(gen) })
}

func (m *Monitor) cancelReminderLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.gen++
}

func (m *Monitor) fireReminder(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen || !m.episode {
		return
	}
	m.episode = false
	m.cancel = nil
	status := m.engine.Status()
	if !status.AwaitingResume {
		// the user already resumed, stopped or reset
		return
	}
	m.notifier.Notify(domain.Notice{Kind: domain.ResumeReminder, Distractions: status.Distractions})
}

// Close cancels a pending reminder.
func (m *Monitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelReminderLocked()
	m.episode = false
}
