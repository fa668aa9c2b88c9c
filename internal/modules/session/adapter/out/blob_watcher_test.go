package out

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBlobWatcherSignalsOnBlobReplace(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := NewBlobWatcher(dir, []string{BlobFileName("focus_tracker_sessions")}, nil)
	changes, err := watcher.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write unrelated: %v", err)
	}
	if err := NewFileBlobStore(dir).Put(ctx, "focus_tracker_sessions", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatalf("expected change signal")
	}

	cancel()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("expected channel closed after cancel")
		}
	}
}
