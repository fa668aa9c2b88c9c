package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timerdto "focustrack/internal/modules/timer/dto"
	"focustrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the subset of the timer intents this view drives directly. Stop is
// routed through the app so it can ask for confirmation first.
type Port interface {
	Snapshot() timerdto.SnapshotOutput
	Categories() []string
	Toggle() error
	Reset() error
	Adjust(delta int) error
	SelectCategory(name string) error
}

// ─── messages ────────────────────────────────────────────────────────────────

// IntentDoneMsg carries the result of a timer intent.
type IntentDoneMsg struct {
	Action string
	Err    error
}

// StopRequestedMsg asks the app to confirm a manual stop.
type StopRequestedMsg struct {
	Snapshot timerdto.SnapshotOutput
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       Port
	snap       timerdto.SnapshotOutput
	categories []string
	summary    *timerdto.SummaryOutput
	notice     string
	bar        progress.Model
	width      int
	height     int
}

func New(port Port) Model {
	bar := progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Lavender)), progress.WithoutPercentage())
	m := Model{port: port, bar: bar}
	if port != nil {
		m.snap = port.Snapshot()
		m.categories = port.Categories()
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Snapshot is the state last rendered.
func (m Model) Snapshot() timerdto.SnapshotOutput { return m.snap }

// Apply folds an engine event into the view.
func (m *Model) Apply(ev timerdto.EventOutput) {
	m.snap = ev.Snapshot
	switch ev.Kind {
	case timerdto.EventFinished:
		m.summary = ev.Summary
		m.notice = ""
	case timerdto.EventChanged:
		if ev.Snapshot.Running() {
			m.notice = ""
			m.summary = nil
		}
	}
}

// SetNotice shows a one-line message under the clock until the next change.
func (m *Model) SetNotice(text string) { m.notice = text }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(max(msg.Width-12, 10), 60)

	case tea.KeyMsg:
		if m.port == nil {
			return m, nil
		}
		switch msg.String() {
		case " ", "enter":
			return m, m.intent("toggle", m.port.Toggle)
		case "s":
			if m.snap.Idle() {
				return m, nil
			}
			snap := m.snap
			return m, func() tea.Msg { return StopRequestedMsg{Snapshot: snap} }
		case "r":
			return m, m.intent("reset", m.port.Reset)
		case "+", "=", "up":
			return m, m.adjust(1)
		case "-", "down":
			return m, m.adjust(-1)
		case "]", "right":
			return m, m.adjust(5)
		case "[", "left":
			return m, m.adjust(-5)
		case "c":
			return m, m.cycleCategory(1)
		case "C":
			return m, m.cycleCategory(-1)
		}
	}
	return m, nil
}

func (m Model) View() string {
	s := m.snap
	style := theme.StateStyle(s.State, s.Distracted())

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Focus") + theme.Muted.Render(" · ") + theme.Hot.Render(s.Category) + "\n\n")
	sb.WriteString(style.Inherit(theme.Clock).Render(fmt.Sprintf("%02d:%02d", s.RemainingMinutes, s.RemainingSeconds)))
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("  of %d min", s.ConfiguredMinutes)) + "\n\n")
	sb.WriteString(m.bar.ViewAs(m.fraction()) + "\n\n")
	sb.WriteString(m.stateLine() + "\n")
	if m.notice != "" {
		sb.WriteString(theme.Note.Render(m.notice) + "\n")
	}
	if m.summary != nil {
		sb.WriteString("\n" + renderSummary(*m.summary) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render(m.hints()))

	pane := theme.Pane
	if s.Distracted() {
		pane = theme.PaneAlert
	} else if s.Running() {
		pane = theme.PaneActive
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, pane.Render(sb.String()))
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) fraction() float64 {
	total := m.snap.ConfiguredMinutes * 60
	if total <= 0 || m.snap.Idle() {
		return 0
	}
	return float64(m.snap.ElapsedSeconds()) / float64(total)
}

func (m Model) stateLine() string {
	s := m.snap
	distractions := fmt.Sprintf("%d distractions", s.Distractions)
	switch {
	case s.Distracted():
		return theme.Alert.Render("Paused: you switched away") + theme.Muted.Render("  "+distractions)
	case s.Running():
		return theme.Good.Render("Running") + theme.Muted.Render("  "+distractions)
	case s.Paused():
		return theme.Hot.Render("Paused") + theme.Muted.Render("  "+distractions)
	default:
		return theme.Muted.Render("Ready")
	}
}

func (m Model) hints() string {
	if m.snap.Idle() {
		return "space: start  +/-: ±1 min  [/]: ±5 min  c: category"
	}
	if m.snap.Running() {
		return "space: pause  s: stop & save  r: reset"
	}
	return "space: resume  s: stop & save  r: reset"
}

func renderSummary(s timerdto.SummaryOutput) string {
	head := "Session stopped"
	if s.Completed {
		head = "Session complete"
	}
	line := fmt.Sprintf("%s · %d min · %d distractions", s.Category, s.Minutes, s.Distractions)
	out := theme.Good.Render(head) + "\n" + line
	if s.PerfectFocus {
		out += "\n" + theme.Note.Render("★ perfect focus")
	}
	return out
}

func (m Model) intent(action string, fn func() error) tea.Cmd {
	return func() tea.Msg { return IntentDoneMsg{Action: action, Err: fn()} }
}

func (m Model) adjust(delta int) tea.Cmd {
	port := m.port
	return m.intent("adjust", func() error { return port.Adjust(delta) })
}

func (m Model) cycleCategory(step int) tea.Cmd {
	if len(m.categories) == 0 {
		return nil
	}
	idx := 0
	for i, c := range m.categories {
		if c == m.snap.Category {
			idx = i
			break
		}
	}
	n := len(m.categories)
	next := m.categories[((idx+step)%n+n)%n]
	port := m.port
	return m.intent("category", func() error { return port.SelectCategory(next) })
}
