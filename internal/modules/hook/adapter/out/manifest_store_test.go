package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	hookout "focustrack/internal/modules/hook/adapter/out"
)

func TestFileManifestStoreLoadMissingReturnsEmpty(t *testing.T) {
	t.Parallel()
	store := hookout.NewFileManifestStore(filepath.Join(t.TempDir(), "hooks.yaml"))
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected empty manifests, got %d", len(manifests))
	}
}

func TestFileManifestStoreEmptyFileReturnsEmpty(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "hooks.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write hooks.yaml: %v", err)
	}
	manifests, err := hookout.NewFileManifestStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected empty manifests, got %d", len(manifests))
	}
}

func TestFileManifestStoreResolvesRelativeBinary(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	path := filepath.Join(base, "hooks.yaml")
	raw := `hooks:
  - name: csvsink
    version: 1.0.0
    binary: plugins/csvsink
    sha256: aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa
    enabled: true
    events: [session_recorded, session_cleared]
    timeout_ms: 1500
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write hooks.yaml: %v", err)
	}
	manifests, err := hookout.NewFileManifestStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("expected one manifest, got %d", len(manifests))
	}
	m := manifests[0]
	if m.Binary != filepath.Join(base, "plugins", "csvsink") {
		t.Fatalf("expected resolved binary path, got %s", m.Binary)
	}
	if len(m.Events) != 2 || m.TimeoutMS != 1500 {
		t.Fatalf("unexpected manifest: %+v", m)
	}
}

func TestFileManifestStoreRejectsUnknownField(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "hooks.yaml")
	raw := `hooks:
  - name: csvsink
    version: 1.0.0
    binary: /tmp/csvsink
    sha256: aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa
    enabled: true
    events: [session_recorded]
    capabilities: [command]
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write hooks.yaml: %v", err)
	}
	if _, err := hookout.NewFileManifestStore(path).Load(context.Background()); err == nil {
		t.Fatalf("expected unknown field error")
	}
}
