package main

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	hookrpc "focustrack/internal/modules/hook/adapter/out/rpc"
)

func TestDeliverAppendsRowsWithSingleHeader(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sessions.csv")
	srv := newServer(path)
	ctx := context.Background()

	recorded := &hookrpc.DeliverRequest{
		Event:      "session_recorded",
		OccurredAt: "2026-03-02T10:25:00Z",
		Session:    &hookrpc.Session{ID: "s1", Category: "Coding", DurationSeconds: 1500, Distractions: 2, Date: "2026-03-02T10:25:00Z"},
	}
	for _, req := range []*hookrpc.DeliverRequest{recorded, {Event: "session_cleared", OccurredAt: "2026-03-02T11:00:00Z"}} {
		resp, err := srv.Deliver(ctx, req)
		if err != nil {
			t.Fatalf("deliver %s: %v", req.Event, err)
		}
		if !resp.Accepted {
			t.Fatalf("expected %s accepted, got %q", req.Event, resp.Message)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus two rows, got %d", len(rows))
	}
	if rows[0][0] != "event" || rows[1][3] != "Coding" || rows[1][4] != "1500" || rows[2][0] != "session_cleared" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestDeliverRejectsRecordedWithoutSession(t *testing.T) {
	t.Parallel()
	srv := newServer(filepath.Join(t.TempDir(), "sessions.csv"))
	resp, err := srv.Deliver(context.Background(), &hookrpc.DeliverRequest{Event: "session_recorded"})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if resp.Accepted {
		t.Fatalf("expected rejection")
	}
}
