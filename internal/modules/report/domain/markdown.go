package domain

import (
	"fmt"
	"strings"
)

// Markdown renders the report as plain markdown, suitable for notes and for
// terminal rendering.
func Markdown(r Report) string {
	var b strings.Builder
	b.WriteString("## Focus report\n\n")
	fmt.Fprintf(&b, "_Generated %s_\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))

	b.WriteString("| Today | All time | Distractions | Sessions |\n")
	b.WriteString("|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %d min | %d min | %d | %d |\n\n", r.Summary.TodayMinutes, r.Summary.AllTimeMinutes, r.Summary.TotalDistractions, r.Summary.Sessions)

	b.WriteString("### Last 7 days\n\n")
	b.WriteString("| Day | Minutes |\n|---|---:|\n")
	for _, d := range r.Days {
		fmt.Fprintf(&b, "| %s | %d |\n", d.Day.Format("Mon 02.01"), d.Minutes)
	}
	b.WriteString("\n")

	b.WriteString("### By category\n\n")
	if len(r.Categories) == 0 {
		b.WriteString("No sessions yet.\n\n")
	} else {
		b.WriteString("| Category | Minutes | Share |\n|---|---:|---:|\n")
		for _, c := range r.Categories {
			fmt.Fprintf(&b, "| %s | %d | %.0f%% |\n", escapeCell(c.Name), c.Minutes, c.Share*100)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Recent sessions\n\n")
	if len(r.Recent) == 0 {
		b.WriteString("No sessions yet.\n")
		return b.String()
	}
	for _, e := range r.Recent {
		badge := ""
		if e.Distractions == 0 {
			badge = " (perfect focus)"
		}
		fmt.Fprintf(&b, "- %s: **%s**, %d min, %d distractions%s\n", e.Date.Format("2006-01-02 15:04"), e.Category, e.Duration/60, e.Distractions, badge)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
