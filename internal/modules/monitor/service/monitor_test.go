package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focustrack/internal/modules/monitor/domain"
)

type fakeEngine struct {
	running      bool
	distracted   bool
	distractions int
}

func (f *fakeEngine) Interrupt() bool {
	if !f.running {
		return false
	}
	f.running = false
	f.distracted = true
	f.distractions++
	return true
}

func (f *fakeEngine) Status() domain.EngineStatus {
	return domain.EngineStatus{AwaitingResume: f.distracted, Distractions: f.distractions}
}

func (f *fakeEngine) resume() {
	f.running = true
	f.distracted = false
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []domain.Notice
}

func (r *recordingNotifier) Notify(n domain.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recordingNotifier) kinds() []domain.NoticeKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.NoticeKind, 0, len(r.notices))
	for _, n := range r.notices {
		out = append(out, n.Kind)
	}
	return out
}

type pendingCall struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

// manualScheduler runs scheduled funcs only when the test fires them.
type manualScheduler struct {
	calls []*pendingCall
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	c := &pendingCall{delay: d, fn: fn}
	s.calls = append(s.calls, c)
	return func() bool {
		was := !c.stopped
		c.stopped = true
		return was
	}
}

func (s *manualScheduler) fireAll() {
	for _, c := range s.calls {
		if !c.stopped {
			c.stopped = true
			c.fn()
		}
	}
}

func (s *manualScheduler) pending() int {
	n := 0
	for _, c := range s.calls {
		if !c.stopped {
			n++
		}
	}
	return n
}

const (
	terminal = "terminal"
	idlePoll = "idle"
)

func newMonitor(engine *fakeEngine) (*Monitor, *recordingNotifier, *manualScheduler) {
	n := &recordingNotifier{}
	s := &manualScheduler{}
	return NewMonitor(engine, n, s, DefaultReminderDelay, nil), n, s
}

func TestMonitorCountsAndRemindsOncePerEpisode(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{running: true}
	m, notifier, sched := newMonitor(engine)

	tr, counted := m.Observe(terminal, domain.Background)
	assert.Equal(t, domain.BecameInactive, tr)
	assert.True(t, counted)

	tr, _ = m.Observe(terminal, domain.Active)
	assert.Equal(t, domain.BecameActive, tr)
	require.Len(t, sched.calls, 1)
	assert.Equal(t, DefaultReminderDelay, sched.calls[0].delay)

	sched.fireAll()
	sched.fireAll()
	assert.Equal(t, []domain.NoticeKind{domain.Distracted, domain.ResumeReminder}, notifier.kinds())

	m.Observe(terminal, domain.Inactive)
	m.Observe(terminal, domain.Active)
	sched.fireAll()
	assert.Equal(t, []domain.NoticeKind{domain.Distracted, domain.ResumeReminder}, notifier.kinds(), "paused timer opens no new episode")
}

func TestMonitorInactiveCancelsPendingReminder(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{running: true}
	m, notifier, sched := newMonitor(engine)

	m.Observe(terminal, domain.Inactive)
	m.Observe(terminal, domain.Active)
	require.Equal(t, 1, sched.pending())

	m.Observe(terminal, domain.Background)
	assert.Equal(t, 0, sched.pending())
	assert.Equal(t, 1, engine.distractions, "flicker while paused is not another distraction")

	m.Observe(terminal, domain.Active)
	require.Equal(t, 1, sched.pending())
	sched.fireAll()
	assert.Equal(t, []domain.NoticeKind{domain.Distracted, domain.ResumeReminder}, notifier.kinds())
}

func TestMonitorNoReminderAfterUserResumed(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{running: true}
	m, notifier, sched := newMonitor(engine)

	m.Observe(terminal, domain.Inactive)
	m.Observe(terminal, domain.Active)
	engine.resume()
	sched.fireAll()
	assert.Equal(t, []domain.NoticeKind{domain.Distracted}, notifier.kinds())
}

func TestMonitorIgnoresSignalsWhileIdleOrUserPaused(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{}
	m, notifier, sched := newMonitor(engine)

	for i := 0; i < 3; i++ {
		_, counted := m.Observe(terminal, domain.Inactive)
		assert.False(t, counted)
		m.Observe(terminal, domain.Active)
	}
	assert.Empty(t, notifier.kinds())
	assert.Empty(t, sched.calls)
	assert.Equal(t, 0, engine.distractions)
}

func TestMonitorCountsEveryRunningLoss(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{running: true}
	m, _, sched := newMonitor(engine)
	for i := 0; i < 3; i++ {
		m.Observe(terminal, domain.Background)
		m.Observe(terminal, domain.Active)
		sched.fireAll()
		engine.resume()
	}
	assert.Equal(t, 3, engine.distractions)
}

func TestMonitorRepeatedSameSignalIsNoop(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{running: true}
	m, _, _ := newMonitor(engine)
	m.Observe(terminal, domain.Active)
	m.Observe(terminal, domain.Inactive)
	engine.resume()
	tr, counted := m.Observe(terminal, domain.Inactive)
	assert.Equal(t, domain.None, tr)
	assert.False(t, counted)
	assert.Equal(t, 1, engine.distractions)
}

func TestMonitorCloseCancelsReminder(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{running: true}
	m, notifier, sched := newMonitor(engine)
	m.Observe(terminal, domain.Inactive)
	m.Observe(terminal, domain.Active)
	m.Close()
	assert.Equal(t, 0, sched.pending())
	sched.fireAll()
	assert.Equal(t, []domain.NoticeKind{domain.Distracted}, notifier.kinds())
}

func TestMonitorWaitsForEverySourceBeforeReminding(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{running: true}
	m, notifier, sched := newMonitor(engine)

	tr, counted := m.Observe(terminal, domain.Inactive)
	assert.Equal(t, domain.BecameInactive, tr)
	assert.True(t, counted)

	tr, _ = m.Observe(idlePoll, domain.Active)
	assert.Equal(t, domain.None, tr, "busy in another window is still away")
	assert.Empty(t, sched.calls)

	tr, _ = m.Observe(terminal, domain.Active)
	assert.Equal(t, domain.BecameActive, tr)
	require.Equal(t, 1, sched.pending())
	sched.fireAll()
	assert.Equal(t, []domain.NoticeKind{domain.Distracted, domain.ResumeReminder}, notifier.kinds())
}

func TestMonitorSecondSourceLossIsOneEpisode(t *testing.T) {
	t.Parallel()
	engine := &fakeEngine{running: true}
	m, notifier, sched := newMonitor(engine)

	m.Observe(terminal, domain.Inactive)
	tr, counted := m.Observe(idlePoll, domain.Inactive)
	assert.Equal(t, domain.None, tr)
	assert.False(t, counted)

	m.Observe(terminal, domain.Active)
	assert.Empty(t, sched.calls, "idle poller still reports away")

	tr, _ = m.Observe(idlePoll, domain.Active)
	assert.Equal(t, domain.BecameActive, tr)
	sched.fireAll()
	assert.Equal(t, 1, engine.distractions)
	assert.Equal(t, []domain.NoticeKind{domain.Distracted, domain.ResumeReminder}, notifier.kinds())
}
