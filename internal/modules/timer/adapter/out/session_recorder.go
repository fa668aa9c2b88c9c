package out

import (
	"context"

	sessiondto "focustrack/internal/modules/session/dto"
	sessionin "focustrack/internal/modules/session/port/in"
	"focustrack/internal/modules/timer/domain"
	timerout "focustrack/internal/modules/timer/port/out"
)

type SessionRecorderBridge struct {
	sessions sessionin.Usecase
}

func NewSessionRecorderBridge(sessions sessionin.Usecase) timerout.SessionRecorder {
	return &SessionRecorderBridge{sessions: sessions}
}

func (b *SessionRecorderBridge) Record(ctx context.Context, summary domain.Summary) (string, error) {
	rec, err := b.sessions.Append(ctx, sessiondto.AppendInput{
		Category:        summary.Category,
		DurationSeconds: summary.Duration,
		Distractions:    summary.Distractions,
		Date:            summary.Date,
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}
