package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	monitordto "focustrack/internal/modules/monitor/dto"
	timerdto "focustrack/internal/modules/timer/dto"
	apperrors "focustrack/internal/platform/errors"
	"focustrack/internal/ui/components"
	"focustrack/internal/ui/theme"
	historyview "focustrack/internal/ui/views/history"
	reportview "focustrack/internal/ui/views/report"
	timerview "focustrack/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type timerPort interface {
	timerview.Port
	Stop() (*timerdto.SummaryOutput, error)
	Subscribe(buffer int) (<-chan timerdto.EventOutput, func())
}

type focusPort interface {
	Focus() (monitordto.ObserveOutput, error)
	Blur() (monitordto.ObserveOutput, error)
}

type noticePort interface {
	Subscribe(buffer int) (<-chan monitordto.NoticeOutput, func())
}

type sessionPort interface {
	historyview.Port
	ClearSessions(ctx context.Context) error
	SessionChanges(ctx context.Context) (<-chan struct{}, error)
}

// Ports bundles the adapters the TUI talks to. Focus, Notices and the
// session change feed are optional.
type Ports struct {
	Timer   timerPort
	Focus   focusPort
	Notices noticePort
	Session sessionPort
	Report  reportview.Port
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabReport
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{"Timer", "Report", "History"}

const (
	confirmStop  = "stop"
	confirmClear = "clear"

	subscriptionBuffer = 16
)

// hints must stay in sync with executePalette.
var paletteHints = []string{
	"start",
	"pause",
	"stop",
	"reset",
	"duration <minutes>",
	"category <name>",
	"report",
	"history",
	"clear",
}

// hintsFor adds one ready-made "category <name>" entry per category.
func hintsFor(categories []string) []string {
	hints := append([]string(nil), paletteHints...)
	for _, c := range categories {
		hints = append(hints, "category "+c)
	}
	return hints
}

// ─── async messages ──────────────────────────────────────────────────────────

type timerEventMsg timerdto.EventOutput

type noticeMsg monitordto.NoticeOutput

type sessionsChangedMsg struct{}

type focusObservedMsg struct {
	out monitordto.ObserveOutput
	err error
}

type stopDoneMsg struct {
	summary *timerdto.SummaryOutput
	err     error
}

type clearDoneMsg struct{ err error }

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Stop    key.Binding
	Reset   key.Binding
	Adjust  key.Binding
	Cat     key.Binding
	Clear   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Stop:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop & save")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Adjust:  key.NewBinding(key.WithKeys("+", "-", "[", "]"), key.WithHelp("+/- [/]", "duration")),
		Cat:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		Clear:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear history")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Stop, k.Reset},
		{k.Adjust, k.Cat, k.Clear},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, confirmation
// prompts and the event subscriptions; rendering is delegated to sub-views.
type Model struct {
	ports Ports

	timerEvents <-chan timerdto.EventOutput
	notices     <-chan monitordto.NoticeOutput
	changes     <-chan struct{}
	cancels     []func()

	timerView   timerview.Model
	reportView  reportview.Model
	historyView historyview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	confirm   components.Confirm
	status    string
	width     int
	height    int
}

// NewModel subscribes to the timer, the monitor notices and the session
// change feed. ctx bounds the change feed; call Shutdown when the program
// exits to release the other subscriptions.
func NewModel(ctx context.Context, ports Ports) Model {
	var categories []string
	if ports.Timer != nil {
		categories = ports.Timer.Categories()
	}
	m := Model{
		ports:       ports,
		timerView:   timerview.New(ports.Timer),
		reportView:  reportview.New(ports.Report),
		historyView: historyview.New(ports.Session),
		activeTab:   tabTimer,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(hintsFor(categories)),
		status:      "ready",
	}
	if ports.Timer != nil {
		ch, cancel := ports.Timer.Subscribe(subscriptionBuffer)
		m.timerEvents = ch
		m.cancels = append(m.cancels, cancel)
	}
	if ports.Notices != nil {
		ch, cancel := ports.Notices.Subscribe(subscriptionBuffer)
		m.notices = ch
		m.cancels = append(m.cancels, cancel)
	}
	if ports.Session != nil {
		if ch, err := ports.Session.SessionChanges(ctx); err == nil {
			m.changes = ch
		} else {
			m.status = "live refresh off: " + err.Error()
		}
	}
	return m
}

// Shutdown releases the timer and notice subscriptions.
func (m Model) Shutdown() {
	for _, cancel := range m.cancels {
		cancel()
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.timerView.Init(),
		m.reportView.Init(),
		m.historyView.Init(),
		waitTimer(m.timerEvents),
		waitNotice(m.notices),
		waitChanges(m.changes),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case tea.FocusMsg:
		return m, m.observeCmd(true)

	case tea.BlurMsg:
		return m, m.observeCmd(false)

	case focusObservedMsg:
		if msg.err != nil {
			m.status = "focus: " + msg.err.Error()
		}
		return m, nil

	case timerEventMsg:
		cmds = append(cmds, m.applyTimerEvent(timerdto.EventOutput(msg)), waitTimer(m.timerEvents))
		return m, tea.Batch(cmds...)

	case noticeMsg:
		m.timerView.SetNotice(msg.Message)
		m.status = msg.Message
		return m, waitNotice(m.notices)

	case sessionsChangedMsg:
		return m, tea.Batch(m.reportView.Reload(), m.historyView.Reload(), waitChanges(m.changes))

	case timerview.IntentDoneMsg:
		if msg.Err != nil && !advised(msg.Err) {
			m.status = describeError(msg.Err)
		}
		return m, nil

	case timerview.StopRequestedMsg:
		s := msg.Snapshot
		elapsed := s.ElapsedSeconds()
		m.confirm.Ask(confirmStop, fmt.Sprintf("Stop and save this %s session? (%d:%02d elapsed)", s.Category, elapsed/60, elapsed%60))
		return m, nil

	case historyview.ClearRequestedMsg:
		m.confirm.Ask(confirmClear, fmt.Sprintf("Delete all %d recorded sessions?", m.historyView.Len()))
		return m, nil

	case components.ConfirmResultMsg:
		if !msg.Accepted {
			m.status = "cancelled"
			return m, nil
		}
		switch msg.ID {
		case confirmStop:
			return m, m.stopCmd()
		case confirmClear:
			return m, m.clearCmd()
		}
		return m, nil

	case stopDoneMsg:
		if msg.err != nil && !advised(msg.err) {
			m.status = describeError(msg.err)
		}
		return m, nil

	case clearDoneMsg:
		if msg.err != nil {
			m.status = "clear failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "history cleared"
		return m, tea.Batch(m.reportView.Reload(), m.historyView.Reload())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.confirm.Visible() {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
		if m.palette.Visible() {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabHistory && m.historyView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "1", "2", "3":
			m.activeTab = tabID(msg.String()[0] - '1')
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		}

	default:
		if m.palette.Visible() {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.updateActive(msg))
	return m, tea.Batch(cmds...)
}

func (m *Model) updateActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabTimer:
		m.timerView, cmd = m.timerView.Update(msg)
	case tabReport:
		m.reportView, cmd = m.reportView.Update(msg)
	case tabHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	}
	// Loaded messages must reach views that are not on screen.
	switch msg.(type) {
	case reportview.LoadedMsg:
		if m.activeTab != tabReport {
			var c tea.Cmd
			m.reportView, c = m.reportView.Update(msg)
			cmd = tea.Batch(cmd, c)
		}
	case historyview.LoadedMsg:
		if m.activeTab != tabHistory {
			var c tea.Cmd
			m.historyView, c = m.historyView.Update(msg)
			cmd = tea.Batch(cmd, c)
		}
	}
	return cmd
}

func (m *Model) applyTimerEvent(ev timerdto.EventOutput) tea.Cmd {
	m.timerView.Apply(ev)
	switch ev.Kind {
	case timerdto.EventFinished:
		if ev.Summary != nil && ev.Summary.Completed {
			m.status = "session complete"
		} else {
			m.status = "session stopped"
		}
	case timerdto.EventSaved:
		m.status = "session saved"
		return tea.Batch(m.reportView.Reload(), m.historyView.Reload())
	case timerdto.EventPersistFailed:
		m.status = "could not save session: " + errText(ev.Err)
	case timerdto.EventAdvisory:
		text := describeError(ev.Err)
		m.timerView.SetNotice(text)
		m.status = text
	}
	return nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.confirm.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.confirm.View())
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.View()
	case tabReport:
		return m.reportView.View()
	case tabHistory:
		return m.historyView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf("%d %s", i+1, tabLabels[i])
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := "focustrack  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	snap := m.timerView.Snapshot()
	dot := theme.StateStyle(snap.State, snap.Distracted()).Render("●")
	left := fmt.Sprintf("%s %02d:%02d  %s", dot, snap.RemainingMinutes, snap.RemainingSeconds, m.status)
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	if m.ports.Timer == nil && parts[0] != "report" && parts[0] != "history" && parts[0] != "clear" {
		m.status = "timer not configured"
		return m, nil
	}
	timer := m.ports.Timer
	switch parts[0] {
	case "start":
		return m, intentCmd("start", func() error {
			if timer.Snapshot().Running() {
				return nil
			}
			return timer.Toggle()
		})
	case "pause":
		return m, intentCmd("pause", func() error {
			if !timer.Snapshot().Running() {
				return nil
			}
			return timer.Toggle()
		})
	case "stop":
		snap := timer.Snapshot()
		if snap.Idle() {
			m.status = describeError(apperrors.ErrStopRejected)
			return m, nil
		}
		return m, func() tea.Msg { return timerview.StopRequestedMsg{Snapshot: snap} }
	case "reset":
		return m, intentCmd("reset", timer.Reset)
	case "duration":
		if len(parts) < 2 {
			m.status = "usage: duration <minutes>"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid minutes: " + parts[1]
			return m, nil
		}
		return m, intentCmd("duration", func() error {
			return timer.Adjust(minutes - timer.Snapshot().ConfiguredMinutes)
		})
	case "category":
		if len(parts) < 2 {
			m.status = "usage: category <name>"
			return m, nil
		}
		name := strings.Join(parts[1:], " ")
		return m, intentCmd("category", func() error { return timer.SelectCategory(name) })
	case "report":
		m.activeTab = tabReport
		return m, m.reportView.Reload()
	case "history":
		m.activeTab = tabHistory
		return m, m.historyView.Reload()
	case "clear":
		m.activeTab = tabHistory
		return m, func() tea.Msg { return historyview.ClearRequestedMsg{} }
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.timerView, _ = m.timerView.Update(sz)
	m.reportView, _ = m.reportView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}

func describeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, apperrors.ErrStopRejected):
		return "nothing to stop yet"
	case errors.Is(err, apperrors.ErrSessionTooShort):
		return "sessions shorter than a minute are not saved"
	case errors.Is(err, apperrors.ErrTimerBusy):
		return "change duration or category while the timer is idle"
	default:
		return err.Error()
	}
}

// advised reports whether the engine also publishes err as an advisory event,
// which is where the status gets it from.
func advised(err error) bool {
	return errors.Is(err, apperrors.ErrStopRejected) ||
		errors.Is(err, apperrors.ErrSessionTooShort) ||
		errors.Is(err, apperrors.ErrTimerBusy) ||
		errors.Is(err, apperrors.ErrUnknownCategory)
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// ─── async commands ──────────────────────────────────────────────────────────

func waitTimer(ch <-chan timerdto.EventOutput) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return timerEventMsg(ev)
	}
}

func waitNotice(ch <-chan monitordto.NoticeOutput) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg(n)
	}
}

func waitChanges(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return sessionsChangedMsg{}
	}
}

func intentCmd(action string, fn func() error) tea.Cmd {
	return func() tea.Msg { return timerview.IntentDoneMsg{Action: action, Err: fn()} }
}

func (m Model) observeCmd(focused bool) tea.Cmd {
	focus := m.ports.Focus
	if focus == nil {
		return nil
	}
	return func() tea.Msg {
		var out monitordto.ObserveOutput
		var err error
		if focused {
			out, err = focus.Focus()
		} else {
			out, err = focus.Blur()
		}
		return focusObservedMsg{out: out, err: err}
	}
}

func (m Model) stopCmd() tea.Cmd {
	timer := m.ports.Timer
	return func() tea.Msg {
		summary, err := timer.Stop()
		return stopDoneMsg{summary: summary, err: err}
	}
}

func (m Model) clearCmd() tea.Cmd {
	session := m.ports.Session
	return func() tea.Msg {
		if session == nil {
			return clearDoneMsg{err: fmt.Errorf("session adapter not configured")}
		}
		return clearDoneMsg{err: session.ClearSessions(context.Background())}
	}
}
