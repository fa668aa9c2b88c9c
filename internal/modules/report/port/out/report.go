package out

import (
	"context"

	"focustrack/internal/modules/report/domain"
)

type SessionSource interface {
	ListAll(ctx context.Context) ([]domain.Entry, error)
}

type NoteStore interface {
	// Read reports exists=false for a missing note.
	Read(ctx context.Context, path string) (content string, exists bool, err error)
	Write(ctx context.Context, path, content string) error
}
