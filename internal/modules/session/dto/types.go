package dto

import "time"

type AppendInput struct {
	Category        string
	DurationSeconds int
	Distractions    int
	Date            time.Time
}

type RecordOutput struct {
	ID              string
	Category        string
	DurationSeconds int
	Distractions    int
	Date            time.Time
}
