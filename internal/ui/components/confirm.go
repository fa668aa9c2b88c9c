package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focustrack/internal/ui/theme"
)

// ConfirmResultMsg reports the user's answer for the prompt identified by ID.
type ConfirmResultMsg struct {
	ID       string
	Accepted bool
}

var confirmStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Red).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(1, 2)

// Confirm is a modal y/n question.
type Confirm struct {
	id       string
	question string
	visible  bool
}

func (c Confirm) Visible() bool { return c.visible }

func (c *Confirm) Ask(id, question string) {
	c.id = id
	c.question = question
	c.visible = true
}

// Update answers y/Y/enter as yes and anything in n/N/esc/q as no.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if !c.visible {
		return c, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	var accepted bool
	switch key.String() {
	case "y", "Y", "enter":
		accepted = true
	case "n", "N", "esc", "q":
		accepted = false
	default:
		return c, nil
	}
	c.visible = false
	id := c.id
	return c, func() tea.Msg { return ConfirmResultMsg{ID: id, Accepted: accepted} }
}

func (c Confirm) View() string {
	if !c.visible {
		return ""
	}
	return confirmStyle.Render(theme.Alert.Render(c.question) + "\n\n" + theme.Muted.Render("y: yes   n: no"))
}
