package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reportdto "focustrack/internal/modules/report/dto"
	"focustrack/internal/ui/theme"
)

type Port interface {
	Report(ctx context.Context) (reportdto.ReportOutput, error)
}

// LoadedMsg carries a freshly built report.
type LoadedMsg struct {
	Report reportdto.ReportOutput
	Err    error
}

const dayBarWidth = 24

type Model struct {
	port    Port
	report  reportdto.ReportOutput
	err     error
	view    viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, view: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload rebuilds the report from the session store.
func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{Err: fmt.Errorf("report adapter not configured")}
		}
		r, err := port.Report(context.Background())
		return LoadedMsg{Report: r, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = msg.Width
		m.view.Height = msg.Height
		m.view.SetContent(m.render())

	case LoadedMsg:
		m.loading = false
		m.report = msg.Report
		m.err = msg.Err
		m.view.SetContent(m.render())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var vCmd tea.Cmd
	m.view, vCmd = m.view.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Building report…")
	}
	return m.view.View()
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Alert.Render("report: " + m.err.Error())
	}
	r := m.report
	var sb strings.Builder

	tiles := []string{
		tile("Today", fmt.Sprintf("%d min", r.TodayMinutes)),
		tile("All time", fmt.Sprintf("%d min", r.AllTimeMinutes)),
		tile("Distractions", fmt.Sprintf("%d", r.TotalDistractions)),
		tile("Sessions", fmt.Sprintf("%d", r.Sessions)),
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tiles...) + "\n\n")

	sb.WriteString(theme.Title.Render("Last 7 days") + "\n")
	peak := 0
	for _, d := range r.Days {
		peak = max(peak, d.Minutes)
	}
	for _, d := range r.Days {
		n := 0
		if peak > 0 {
			n = d.Minutes * dayBarWidth / peak
		}
		if d.Minutes > 0 && n == 0 {
			n = 1
		}
		bar := lipgloss.NewStyle().Foreground(theme.Lavender).Render(strings.Repeat("█", n))
		sb.WriteString(fmt.Sprintf("  %s %s%s %d\n", d.Label, bar, strings.Repeat(" ", dayBarWidth-n), d.Minutes))
	}

	sb.WriteString("\n" + theme.Title.Render("By category") + "\n")
	if len(r.Categories) == 0 {
		sb.WriteString(theme.Muted.Render("  no sessions yet") + "\n")
	}
	for _, c := range r.Categories {
		bar := progress.New(progress.WithSolidFill(c.Color), progress.WithoutPercentage(), progress.WithWidth(dayBarWidth))
		sb.WriteString(fmt.Sprintf("  %-10s %s %d min (%.0f%%)\n", c.Name, bar.ViewAs(c.Share), c.Minutes, c.Share*100))
	}

	sb.WriteString("\n" + theme.Title.Render("Recent") + "\n")
	if len(r.Recent) == 0 {
		sb.WriteString(theme.Muted.Render("  no sessions yet") + "\n")
	}
	for _, s := range r.Recent {
		badge := ""
		if s.PerfectFocus {
			badge = theme.Note.Render("  ★")
		}
		sb.WriteString(fmt.Sprintf("  %s  %-10s %3d min  %d distractions%s\n",
			theme.Muted.Render(s.Date.Format("Jan 02 15:04")), s.Category, s.Minutes, s.Distractions, badge))
	}
	return sb.String()
}

func tile(label, value string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Padding(0, 2).
		MarginRight(1).
		Render(theme.Muted.Render(label) + "\n" + theme.Hot.Render(value))
}
