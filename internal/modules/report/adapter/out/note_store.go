package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	reportout "focustrack/internal/modules/report/port/out"
)

type FileNoteStore struct{}

func NewFileNoteStore() reportout.NoteStore {
	return FileNoteStore{}
}

func (FileNoteStore) Read(_ context.Context, path string) (string, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read note: %w", err)
	}
	return string(raw), true, nil
}

func (FileNoteStore) Write(_ context.Context, path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create note dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	return nil
}
