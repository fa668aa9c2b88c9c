package history

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	sessiondto "focustrack/internal/modules/session/dto"
	"focustrack/internal/ui/theme"
)

type Port interface {
	ListSessions(ctx context.Context) ([]sessiondto.RecordOutput, error)
}

// LoadedMsg carries the session log, oldest first as stored.
type LoadedMsg struct {
	Sessions []sessiondto.RecordOutput
	Err      error
}

// ClearRequestedMsg asks the app to confirm clearing every session.
type ClearRequestedMsg struct{}

type sessionItem struct {
	rec sessiondto.RecordOutput
}

func (i sessionItem) Title() string { return i.rec.Category }

func (i sessionItem) Description() string {
	desc := fmt.Sprintf("%s  %d min  %d distractions", i.rec.Date.Format("2006-01-02 15:04"), i.rec.DurationSeconds/60, i.rec.Distractions)
	if i.rec.Distractions == 0 {
		desc += "  ★"
	}
	return desc
}

func (i sessionItem) FilterValue() string { return i.rec.Category }

type Model struct {
	port Port
	list list.Model
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("session", "sessions")

	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{Err: fmt.Errorf("session adapter not configured")}
		}
		sessions, err := port.ListSessions(context.Background())
		return LoadedMsg{Sessions: sessions, Err: err}
	}
}

// Filtering reports whether the list's search filter is active so the app
// can let typed keys through.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Len is the number of sessions listed.
func (m Model) Len() int { return len(m.list.Items()) }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)

	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "History: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "History"
		items := make([]list.Item, 0, len(msg.Sessions))
		for i := len(msg.Sessions) - 1; i >= 0; i-- {
			items = append(items, sessionItem{rec: msg.Sessions[i]})
		}
		cmds = append(cmds, m.list.SetItems(items))

	case tea.KeyMsg:
		if !m.Filtering() && msg.String() == "x" && len(m.list.Items()) > 0 {
			return m, func() tea.Msg { return ClearRequestedMsg{} }
		}
	}

	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	return m.list.View()
}
