package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focustrack/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle     = lipgloss.NewStyle().Foreground(theme.Subtext0)
	selectedStyle = lipgloss.NewStyle().Foreground(theme.Lavender).Bold(true)
)

const maxSuggestions = 6

// Palette is a one-line command prompt with prefix suggestions. Up/down pick a
// suggestion, tab completes it, and an empty prompt recalls the last command.
type Palette struct {
	input    textinput.Model
	hints    []string
	selected int
	last     string
	visible  bool
	width    int
}

// NewPalette creates a hidden palette. Hints may carry a placeholder argument
// such as "duration <minutes>"; completing one inserts only the command word.
func NewPalette(hints []string) Palette {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "type a command…"
	ti.CharLimit = 128
	return Palette{input: ti, hints: hints}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.selected = 0
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// Value is the text typed so far.
func (p Palette) Value() string { return p.input.Value() }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			if val == "" {
				val = p.last
			}
			if val != "" {
				p.last = val
			}
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "up", "ctrl+p":
			p.move(-1)
			return p, nil
		case "down", "ctrl+n":
			p.move(1)
			return p, nil
		case "tab":
			p.complete()
			return p, nil
		}
	}
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.selected = 0
	}
	return p, cmd
}

// Matching returns the hints whose command starts with the typed text.
func (p Palette) Matching() []string {
	prefix := strings.ToLower(strings.TrimLeft(p.input.Value(), " "))
	var matching []string
	for _, h := range p.hints {
		if strings.HasPrefix(strings.ToLower(h), prefix) {
			matching = append(matching, h)
			if len(matching) == maxSuggestions {
				break
			}
		}
	}
	return matching
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(p.input.View() + "\n")
	if p.last != "" && p.input.Value() == "" {
		sb.WriteString(hintStyle.Render("enter repeats: "+p.last) + "\n")
	}
	if matching := p.Matching(); len(matching) > 0 {
		sb.WriteString("\n")
		for i, h := range matching {
			if i == p.selected {
				sb.WriteString(selectedStyle.Render("› "+h) + "\n")
				continue
			}
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) move(step int) {
	n := len(p.Matching())
	if n == 0 {
		return
	}
	p.selected = ((p.selected+step)%n + n) % n
}

func (p *Palette) complete() {
	matching := p.Matching()
	if len(matching) == 0 {
		return
	}
	hint := matching[min(p.selected, len(matching)-1)]
	if i := strings.Index(hint, " <"); i >= 0 {
		hint = hint[:i+1]
	}
	p.input.SetValue(hint)
	p.input.CursorEnd()
	p.selected = 0
}
