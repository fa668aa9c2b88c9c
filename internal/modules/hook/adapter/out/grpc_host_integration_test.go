package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	hookout "focustrack/internal/modules/hook/adapter/out"
	"focustrack/internal/modules/hook/domain"
)

func TestGRPCHostIntegrationCSVSink(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the csvsink plugin")
	}
	binPath, checksum := buildCSVSink(t)
	csvPath := filepath.Join(t.TempDir(), "sessions.csv")
	t.Setenv("FOCUSTRACK_CSVSINK_FILE", csvPath)

	manifest := domain.Manifest{
		Name:    "csvsink",
		Version: "1.0.0",
		Binary:  binPath,
		SHA256:  checksum,
		Enabled: true,
		Events:  []string{domain.EventSessionRecorded, domain.EventSessionCleared},
	}

	host := hookout.NewGRPCHost(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "csvsink" || len(metadata.Events) != 2 {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}

	date := time.Date(2026, 3, 2, 10, 25, 0, 0, time.UTC)
	err = host.Deliver(ctx, manifest, domain.Event{
		Name:       domain.EventSessionRecorded,
		OccurredAt: date,
		Session:    &domain.Session{ID: "s1", Category: "Reading", DurationSeconds: 900, Date: date},
	})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.Contains(string(raw), "s1,Reading,900,0,2026-03-02T10:25:00Z") {
		t.Fatalf("unexpected csv contents:\n%s", raw)
	}
}

func buildCSVSink(t *testing.T) (string, string) {
	t.Helper()
	tmp := t.TempDir()
	binPath := filepath.Join(tmp, "csvsink")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/csvsink")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build csvsink plugin: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built plugin: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
