package dto

import "time"

type ReportInput struct {
	Recent int
}

type ReportOutput struct {
	GeneratedAt       time.Time        `json:"generated_at"`
	TodayMinutes      int              `json:"today_minutes"`
	AllTimeMinutes    int              `json:"all_time_minutes"`
	TotalDistractions int              `json:"total_distractions"`
	Sessions          int              `json:"sessions"`
	Days              []DayOutput      `json:"last_seven_days"`
	Categories        []CategoryOutput `json:"categories"`
	Recent            []SessionOutput  `json:"recent"`
}

type DayOutput struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Minutes int    `json:"minutes"`
}

type CategoryOutput struct {
	Name    string  `json:"name"`
	Minutes int     `json:"minutes"`
	Seconds int     `json:"seconds"`
	Color   string  `json:"color"`
	Share   float64 `json:"share"`
}

type SessionOutput struct {
	ID              string    `json:"id"`
	Category        string    `json:"category"`
	DurationSeconds int       `json:"duration"`
	Minutes         int       `json:"minutes"`
	Distractions    int       `json:"distractions"`
	PerfectFocus    bool      `json:"perfect_focus"`
	Date            time.Time `json:"date"`
}

type WriteNoteInput struct {
	Path   string
	Recent int
}

type WriteNoteOutput struct {
	Path    string
	Created bool
}
