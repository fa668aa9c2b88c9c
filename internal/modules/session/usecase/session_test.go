package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	hookdto "focustrack/internal/modules/hook/dto"
	sessionout "focustrack/internal/modules/session/adapter/out"
	sessiondto "focustrack/internal/modules/session/dto"
	"focustrack/internal/modules/session/service"
	"focustrack/internal/modules/session/usecase"
	apperrors "focustrack/internal/platform/errors"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeID struct{}

func (fakeID) New() string { return "sess-1" }

type fakeHooks struct {
	mu     sync.Mutex
	events []hookdto.EventInput
	err    error
}

func (f *fakeHooks) List(context.Context) ([]hookdto.HookInfo, error)       { return nil, nil }
func (f *fakeHooks) Doctor(context.Context) ([]hookdto.DoctorResult, error) { return nil, nil }
func (f *fakeHooks) Dispatch(_ context.Context, event hookdto.EventInput) ([]hookdto.DeliveryResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return []hookdto.DeliveryResult{{Hook: "csv", Delivered: f.err == nil}}, f.err
}

var now = time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

func TestAppendListClearWithFileStore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	hooks := &fakeHooks{}
	svc := service.NewSessionService(fakeID{}, sessionout.NewFileBlobStore(dir))
	uc := usecase.NewInteractor(svc, nil, hooks, fakeClock{now: now}, nil)
	ctx := context.Background()

	rec, err := uc.Append(ctx, sessiondto.AppendInput{Category: "Study", DurationSeconds: 1500, Distractions: 2, Date: now})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if rec.ID != "sess-1" || rec.DurationSeconds != 1500 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "focus_tracker_sessions.json"))
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	want := `[{"id":"sess-1","category":"Study","duration":1500,"distractions":2,"date":"2026-03-02T18:00:00Z"}]`
	if string(raw) != want {
		t.Fatalf("unexpected blob:\n%s\nwant\n%s", raw, want)
	}

	list, err := uc.ListAll(ctx)
	if err != nil || len(list) != 1 || !list[0].Date.Equal(now) {
		t.Fatalf("unexpected list: %+v %v", list, err)
	}

	if err := uc.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	list, err = uc.ListAll(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty after clear, got %+v %v", list, err)
	}

	if len(hooks.events) != 2 {
		t.Fatalf("expected 2 hook events, got %d", len(hooks.events))
	}
	if hooks.events[0].Name != hookdto.EventSessionRecorded || hooks.events[0].Session.ID != "sess-1" {
		t.Fatalf("unexpected recorded event: %+v", hooks.events[0])
	}
	if hooks.events[1].Name != hookdto.EventSessionCleared || !hooks.events[1].OccurredAt.Equal(now) {
		t.Fatalf("unexpected cleared event: %+v", hooks.events[1])
	}
}

func TestListAllDegradesOnCorruptBlob(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "focus_tracker_sessions.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt blob: %v", err)
	}
	svc := service.NewSessionService(fakeID{}, sessionout.NewFileBlobStore(dir))
	uc := usecase.NewInteractor(svc, nil, nil, fakeClock{now: now}, nil)

	list, err := uc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}

	_, err = uc.Append(context.Background(), sessiondto.AppendInput{Category: "Study", DurationSeconds: 60, Date: now})
	if !errors.Is(err, apperrors.ErrStorageFailure) {
		t.Fatalf("expected storage failure on append, got %v", err)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != "not json" {
		t.Fatalf("corrupt blob must stay untouched, got %q", raw)
	}
}

func TestHookFailureDoesNotFailAppend(t *testing.T) {
	t.Parallel()
	hooks := &fakeHooks{err: errors.New("plugin crashed")}
	svc := service.NewSessionService(fakeID{}, sessionout.NewFileBlobStore(t.TempDir()))
	uc := usecase.NewInteractor(svc, nil, hooks, fakeClock{now: now}, nil)

	if _, err := uc.Append(context.Background(), sessiondto.AppendInput{Category: "Coding", DurationSeconds: 90, Date: now}); err != nil {
		t.Fatalf("append must succeed despite hook failure: %v", err)
	}
}

func TestChangesWithoutWatcher(t *testing.T) {
	t.Parallel()
	svc := service.NewSessionService(fakeID{}, sessionout.NewFileBlobStore(t.TempDir()))
	uc := usecase.NewInteractor(svc, nil, nil, fakeClock{now: now}, nil)
	if _, err := uc.Changes(context.Background()); err == nil {
		t.Fatalf("expected error without watcher")
	}
}
