package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	hookrpc "focustrack/internal/modules/hook/adapter/out/rpc"
)

var header = []string{"event", "occurred_at", "id", "category", "duration_seconds", "distractions", "date"}

type server struct {
	path string
	mu   sync.Mutex
}

func newServer(path string) *server {
	return &server{path: path}
}

func (s *server) GetMetadata(_ context.Context, _ *hookrpc.Empty) (*hookrpc.Metadata, error) {
	return &hookrpc.Metadata{
		Name:    "csvsink",
		Version: "1.0.0",
		Events:  []string{"session_recorded", "session_cleared"},
	}, nil
}

// Deliver appends one row per event. A cleared event is logged as a marker
// row; earlier rows are kept.
func (s *server) Deliver(_ context.Context, in *hookrpc.DeliverRequest) (*hookrpc.DeliverResponse, error) {
	var row []string
	switch in.Event {
	case "session_recorded":
		if in.Session == nil {
			return &hookrpc.DeliverResponse{Message: "session_recorded without session"}, nil
		}
		row = []string{
			in.Event,
			in.OccurredAt,
			in.Session.ID,
			in.Session.Category,
			strconv.Itoa(in.Session.DurationSeconds),
			strconv.Itoa(in.Session.Distractions),
			in.Session.Date,
		}
	case "session_cleared":
		row = []string{in.Event, in.OccurredAt, "", "", "", "", ""}
	default:
		return &hookrpc.DeliverResponse{Message: "unsupported event " + in.Event}, nil
	}
	if err := s.append(row); err != nil {
		return nil, err
	}
	return &hookrpc.DeliverResponse{Accepted: true, Message: "appended to " + s.path}, nil
}

func (s *server) append(row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, statErr := os.Stat(s.path)
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if statErr != nil || info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
