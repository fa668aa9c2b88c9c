package app

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	monitordto "focustrack/internal/modules/monitor/dto"
	reportdto "focustrack/internal/modules/report/dto"
	sessiondto "focustrack/internal/modules/session/dto"
	timerdto "focustrack/internal/modules/timer/dto"
	apperrors "focustrack/internal/platform/errors"
	"focustrack/internal/ui/components"
	historyview "focustrack/internal/ui/views/history"
	timerview "focustrack/internal/ui/views/timer"
)

type fakeTimer struct {
	snap    timerdto.SnapshotOutput
	stops   int
	events  chan timerdto.EventOutput
	adjusts []int
}

func (f *fakeTimer) Snapshot() timerdto.SnapshotOutput { return f.snap }
func (f *fakeTimer) Categories() []string              { return []string{"Coding"} }
func (f *fakeTimer) Toggle() error                     { return nil }
func (f *fakeTimer) Reset() error                      { return nil }
func (f *fakeTimer) SelectCategory(string) error       { return apperrors.ErrTimerBusy }

func (f *fakeTimer) Adjust(delta int) error {
	f.adjusts = append(f.adjusts, delta)
	return nil
}

func (f *fakeTimer) Stop() (*timerdto.SummaryOutput, error) {
	f.stops++
	return &timerdto.SummaryOutput{Category: "Coding", Minutes: 5}, nil
}

func (f *fakeTimer) Subscribe(int) (<-chan timerdto.EventOutput, func()) {
	return f.events, func() {}
}

type fakeFocus struct{ blurs, focuses int }

func (f *fakeFocus) Focus() (monitordto.ObserveOutput, error) {
	f.focuses++
	return monitordto.ObserveOutput{Transition: "became_active"}, nil
}

func (f *fakeFocus) Blur() (monitordto.ObserveOutput, error) {
	f.blurs++
	return monitordto.ObserveOutput{Transition: "became_inactive", Counted: true}, nil
}

type fakeSession struct{ cleared int }

func (f *fakeSession) ListSessions(context.Context) ([]sessiondto.RecordOutput, error) {
	return []sessiondto.RecordOutput{{ID: "a", Category: "Coding", DurationSeconds: 600}}, nil
}

func (f *fakeSession) ClearSessions(context.Context) error {
	f.cleared++
	return nil
}

func (f *fakeSession) SessionChanges(context.Context) (<-chan struct{}, error) {
	return make(chan struct{}), nil
}

type fakeReport struct{}

func (fakeReport) Report(context.Context) (reportdto.ReportOutput, error) {
	return reportdto.ReportOutput{}, nil
}

func runningSnap() timerdto.SnapshotOutput {
	return timerdto.SnapshotOutput{State: "running", ConfiguredMinutes: 25, RemainingMinutes: 20, Category: "Coding"}
}

func newTestModel(timer *fakeTimer, focus *fakeFocus, session *fakeSession) Model {
	return NewModel(context.Background(), Ports{Timer: timer, Focus: focus, Session: session, Report: fakeReport{}})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model, cmd
}

func TestStopRequiresConfirmation(t *testing.T) {
	t.Parallel()
	timer := &fakeTimer{snap: runningSnap(), events: make(chan timerdto.EventOutput)}
	m := newTestModel(timer, &fakeFocus{}, &fakeSession{})

	m, _ = update(t, m, timerview.StopRequestedMsg{Snapshot: timer.snap})
	if !m.confirm.Visible() {
		t.Fatalf("expected confirmation prompt")
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if res := cmd().(components.ConfirmResultMsg); res.Accepted {
		t.Fatalf("expected decline")
	}
	if timer.stops != 0 {
		t.Fatalf("declined stop must not reach the timer")
	}

	m, _ = update(t, m, timerview.StopRequestedMsg{Snapshot: timer.snap})
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	res := cmd()
	_, cmd = update(t, m, res)
	if _, ok := cmd().(stopDoneMsg); !ok || timer.stops != 1 {
		t.Fatalf("expected one stop, got %d", timer.stops)
	}
}

func TestFocusMessagesReachMonitor(t *testing.T) {
	t.Parallel()
	focus := &fakeFocus{}
	m := newTestModel(&fakeTimer{snap: runningSnap()}, focus, &fakeSession{})

	_, cmd := update(t, m, tea.BlurMsg{})
	cmd()
	_, cmd = update(t, m, tea.FocusMsg{})
	cmd()
	if focus.blurs != 1 || focus.focuses != 1 {
		t.Fatalf("expected one blur and one focus, got %d/%d", focus.blurs, focus.focuses)
	}
}

func TestClearHistoryConfirmed(t *testing.T) {
	t.Parallel()
	session := &fakeSession{}
	m := newTestModel(&fakeTimer{snap: runningSnap()}, &fakeFocus{}, session)

	m, _ = update(t, m, historyview.ClearRequestedMsg{})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd = update(t, m, cmd())
	msg := cmd()
	if _, ok := msg.(clearDoneMsg); !ok || session.cleared != 1 {
		t.Fatalf("expected clear to run once, got %d", session.cleared)
	}
	m, _ = update(t, m, msg)
	if m.status != "history cleared" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestAdvisoryEventBecomesStatus(t *testing.T) {
	t.Parallel()
	m := newTestModel(&fakeTimer{snap: runningSnap()}, &fakeFocus{}, &fakeSession{})
	m, _ = update(t, m, timerEventMsg(timerdto.EventOutput{Kind: timerdto.EventAdvisory, Err: apperrors.ErrSessionTooShort}))
	if m.status != "sessions shorter than a minute are not saved" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestPaletteDurationAdjustsByDifference(t *testing.T) {
	t.Parallel()
	timer := &fakeTimer{snap: timerdto.SnapshotOutput{State: "idle", ConfiguredMinutes: 25, RemainingMinutes: 25}}
	m := newTestModel(timer, &fakeFocus{}, &fakeSession{})
	_, cmd := update(t, m, components.PaletteSubmitMsg{Input: "duration 40"})
	cmd()
	if len(timer.adjusts) != 1 || timer.adjusts[0] != 15 {
		t.Fatalf("expected +15 adjust, got %v", timer.adjusts)
	}

	_, cmd = update(t, m, components.PaletteSubmitMsg{Input: "category Reading"})
	msg := cmd().(timerview.IntentDoneMsg)
	m, _ = update(t, m, timerEventMsg(timerdto.EventOutput{Kind: timerdto.EventAdvisory, Err: msg.Err}))
	m, _ = update(t, m, msg)
	if m.status != "change duration or category while the timer is idle" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestRefusedStopReportedByAdvisoryOnly(t *testing.T) {
	t.Parallel()
	m := newTestModel(&fakeTimer{snap: runningSnap()}, &fakeFocus{}, &fakeSession{})

	m, _ = update(t, m, stopDoneMsg{err: apperrors.ErrSessionTooShort})
	if m.status != "ready" {
		t.Fatalf("stop result set status %q before the advisory arrived", m.status)
	}

	m, _ = update(t, m, timerEventMsg(timerdto.EventOutput{Kind: timerdto.EventAdvisory, Err: apperrors.ErrSessionTooShort}))
	m.status = "next"
	m, _ = update(t, m, stopDoneMsg{err: apperrors.ErrStopRejected})
	if m.status != "next" {
		t.Fatalf("rejected stop overwrote status with %q", m.status)
	}

	m, _ = update(t, m, stopDoneMsg{err: errors.New("engine closed")})
	if m.status != "engine closed" {
		t.Fatalf("unexpected status %q", m.status)
	}
}
