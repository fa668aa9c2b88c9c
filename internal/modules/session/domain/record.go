package domain

import (
	"fmt"
	"time"

	apperrors "focustrack/internal/platform/errors"
)

// Draft is a finished interval that has not been assigned an id yet.
type Draft struct {
	Category     string
	Duration     int
	Distractions int
	Date         time.Time
}

// Record is one persisted focus session. Duration is in seconds.
type Record struct {
	ID           string    `json:"id"`
	Category     string    `json:"category"`
	Duration     int       `json:"duration"`
	Distractions int       `json:"distractions"`
	Date         time.Time `json:"date"`
}

func (d Draft) Validate() error {
	if d.Category == "" {
		return fmt.Errorf("%w: category is required", apperrors.ErrInvalidInput)
	}
	if d.Duration < 0 {
		return fmt.Errorf("%w: duration must be non-negative", apperrors.ErrInvalidInput)
	}
	if d.Distractions < 0 {
		return fmt.Errorf("%w: distractions must be non-negative", apperrors.ErrInvalidInput)
	}
	if d.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperrors.ErrInvalidInput)
	}
	return nil
}

func NewRecord(id string, draft Draft) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("%w: id is required", apperrors.ErrInvalidInput)
	}
	if err := draft.Validate(); err != nil {
		return Record{}, err
	}
	return Record{
		ID:           id,
		Category:     draft.Category,
		Duration:     draft.Duration,
		Distractions: draft.Distractions,
		Date:         draft.Date,
	}, nil
}

// Minutes is the floored whole-minute duration shown to users.
func (r Record) Minutes() int {
	return r.Duration / 60
}

func (r Record) PerfectFocus() bool {
	return r.Distractions == 0
}

// CheckStored rejects records that cannot have been written by Append.
func CheckStored(records []Record) error {
	for i, r := range records {
		if r.ID == "" || r.Duration < 0 || r.Distractions < 0 {
			return fmt.Errorf("record %d is malformed", i)
		}
	}
	return nil
}
