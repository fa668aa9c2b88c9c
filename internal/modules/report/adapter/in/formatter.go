package in

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	reportdto "focustrack/internal/modules/report/dto"
	"focustrack/internal/platform/codec"
)

type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(raw)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown report format %q (text, json, markdown)", raw)
	}
}

const (
	barWidth   = 30
	labelWidth = 14
)

// RenderText draws the report as aligned columns with per-category bars.
func RenderText(r reportdto.ReportOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Today        %d min\n", r.TodayMinutes)
	fmt.Fprintf(&b, "All time     %d min\n", r.AllTimeMinutes)
	fmt.Fprintf(&b, "Distractions %d\n", r.TotalDistractions)
	fmt.Fprintf(&b, "Sessions     %d\n\n", r.Sessions)

	b.WriteString("Last 7 days\n")
	peak := 0
	for _, d := range r.Days {
		peak = max(peak, d.Minutes)
	}
	for _, d := range r.Days {
		fmt.Fprintf(&b, "  %s %s %d\n", d.Label, bar(d.Minutes, peak, "#6366f1"), d.Minutes)
	}

	b.WriteString("\nBy category\n")
	if len(r.Categories) == 0 {
		b.WriteString("  no sessions yet\n")
	}
	for _, c := range r.Categories {
		name := runewidth.FillRight(runewidth.Truncate(c.Name, labelWidth, "…"), labelWidth)
		fmt.Fprintf(&b, "  %s %s %d min (%.0f%%)\n", name, bar(int(c.Share*1000), 1000, c.Color), c.Minutes, c.Share*100)
	}

	b.WriteString("\nRecent\n")
	if len(r.Recent) == 0 {
		b.WriteString("  no sessions yet\n")
	}
	for _, s := range r.Recent {
		name := runewidth.FillRight(runewidth.Truncate(s.Category, labelWidth, "…"), labelWidth)
		badge := ""
		if s.PerfectFocus {
			badge = "  perfect focus"
		}
		fmt.Fprintf(&b, "  %s  %s %3d min  %d distractions%s\n", s.Date.Format("2006-01-02 15:04"), name, s.Minutes, s.Distractions, badge)
	}
	return b.String()
}

func bar(value, peak int, color string) string {
	n := 0
	if peak > 0 {
		n = value * barWidth / peak
	}
	if value > 0 && n == 0 {
		n = 1
	}
	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", n))
	return filled + strings.Repeat(" ", barWidth-n)
}

func RenderJSON(r reportdto.ReportOutput) (string, error) {
	raw, err := codec.MarshalIndent(r)
	if err != nil {
		return "", err
	}
	return string(raw) + "\n", nil
}

// RenderMarkdown styles markdown for a terminal; plain output is returned
// unchanged when styled is false.
func RenderMarkdown(md string, styled bool, width int) (string, error) {
	if !styled {
		return md, nil
	}
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
