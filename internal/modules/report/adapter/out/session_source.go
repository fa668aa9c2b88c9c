package out

import (
	"context"

	"focustrack/internal/modules/report/domain"
	reportout "focustrack/internal/modules/report/port/out"
	sessionin "focustrack/internal/modules/session/port/in"
)

type SessionSourceBridge struct {
	sessions sessionin.Usecase
}

func NewSessionSourceBridge(sessions sessionin.Usecase) reportout.SessionSource {
	return &SessionSourceBridge{sessions: sessions}
}

func (b *SessionSourceBridge) ListAll(ctx context.Context) ([]domain.Entry, error) {
	records, err := b.sessions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, domain.Entry{
			ID:           r.ID,
			Category:     r.Category,
			Duration:     r.DurationSeconds,
			Distractions: r.Distractions,
			Date:         r.Date,
		})
	}
	return entries, nil
}
