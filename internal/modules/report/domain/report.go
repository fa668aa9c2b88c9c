package domain

import "time"

// Palette is assigned to categories in first-appearance order.
var Palette = []string{"#6366f1", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6"}

const RecentDefault = 5

// Entry is a session record as the report sees it. Duration is in seconds.
type Entry struct {
	ID           string
	Category     string
	Duration     int
	Distractions int
	Date         time.Time
}

type Summary struct {
	TodayMinutes      int
	AllTimeMinutes    int
	TotalDistractions int
	Sessions          int
}

type DayTotal struct {
	Day     time.Time
	Seconds int
	Minutes int
}

type CategoryTotal struct {
	Name    string
	Seconds int
	Minutes int
	Color   string
	// Share is the fraction of all recorded seconds, 0 when nothing is recorded.
	Share float64
}

type Report struct {
	GeneratedAt time.Time
	Summary     Summary
	Days        []DayTotal
	Categories  []CategoryTotal
	Recent      []Entry
}

func Build(entries []Entry, now time.Time, loc *time.Location, recent int) Report {
	return Report{
		GeneratedAt: now,
		Summary:     Summarize(entries, now, loc),
		Days:        LastSevenDays(entries, now, loc),
		Categories:  ByCategory(entries),
		Recent:      Recent(entries, recent),
	}
}

// Summarize floors minutes after summing seconds.
func Summarize(entries []Entry, now time.Time, loc *time.Location) Summary {
	today := dayOf(now, loc)
	var todaySeconds, allSeconds, distractions int
	for _, e := range entries {
		allSeconds += e.Duration
		distractions += e.Distractions
		if dayOf(e.Date, loc).Equal(today) {
			todaySeconds += e.Duration
		}
	}
	return Summary{
		TodayMinutes:      todaySeconds / 60,
		AllTimeMinutes:    allSeconds / 60,
		TotalDistractions: distractions,
		Sessions:          len(entries),
	}
}

// LastSevenDays returns seven calendar days ending today, oldest first. Days
// without sessions are present with zero totals.
func LastSevenDays(entries []Entry, now time.Time, loc *time.Location) []DayTotal {
	today := dayOf(now, loc)
	days := make([]DayTotal, 7)
	index := make(map[time.Time]int, 7)
	for i := 0; i < 7; i++ {
		d := today.AddDate(0, 0, i-6)
		days[i] = DayTotal{Day: d}
		index[d] = i
	}
	for _, e := range entries {
		if i, ok := index[dayOf(e.Date, loc)]; ok {
			days[i].Seconds += e.Duration
		}
	}
	for i := range days {
		days[i].Minutes = days[i].Seconds / 60
	}
	return days
}

func ByCategory(entries []Entry) []CategoryTotal {
	var out []CategoryTotal
	index := map[string]int{}
	total := 0
	for _, e := range entries {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, CategoryTotal{Name: e.Category, Color: Palette[i%len(Palette)]})
		}
		out[i].Seconds += e.Duration
		total += e.Duration
	}
	for i := range out {
		out[i].Minutes = out[i].Seconds / 60
		if total > 0 {
			out[i].Share = float64(out[i].Seconds) / float64(total)
		}
	}
	return out
}

// Recent returns the last n entries, newest first.
func Recent(entries []Entry, n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	start := len(entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]Entry, 0, len(entries)-start)
	for i := len(entries) - 1; i >= start; i-- {
		out = append(out, entries[i])
	}
	return out
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
