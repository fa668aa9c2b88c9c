package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	sessionout "focustrack/internal/modules/session/port/out"
)

// BlobWatcher reports writes to the files backing the session blob. The
// directory is watched rather than the file so rename-based replacement and
// first creation are both seen.
type BlobWatcher struct {
	dir    string
	names  map[string]struct{}
	logger hclog.Logger
}

func NewBlobWatcher(dir string, fileNames []string, logger hclog.Logger) sessionout.ChangeWatcher {
	names := map[string]struct{}{}
	for _, n := range fileNames {
		names[n] = struct{}{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &BlobWatcher{dir: dir, names: names, logger: logger}
}

// Watch emits at most one pending signal at a time; bursts coalesce. The
// channel closes when ctx is done.
func (w *BlobWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create watch dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(w.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !w.relevant(event) {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("session watcher error", "error", err)
			}
		}
	}()
	return changes, nil
}

func (w *BlobWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	_, ok := w.names[filepath.Base(event.Name)]
	return ok
}
