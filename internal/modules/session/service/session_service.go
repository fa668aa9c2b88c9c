package service

import (
	"context"
	"fmt"
	"sync"

	"focustrack/internal/modules/session/domain"
	sessionout "focustrack/internal/modules/session/port/out"
	"focustrack/internal/platform/codec"
	apperrors "focustrack/internal/platform/errors"
	"focustrack/internal/platform/id"
)

// BlobKey names the single blob holding every session record.
const BlobKey = "focus_tracker_sessions"

type SessionService struct {
	idGen id.Generator
	store sessionout.BlobStore

	// mu serializes read-modify-write appends and clears.
	mu sync.Mutex
}

func NewSessionService(idGen id.Generator, store sessionout.BlobStore) *SessionService {
	return &SessionService{idGen: idGen, store: store}
}

func (s *SessionService) Append(ctx context.Context, draft domain.Draft) (domain.Record, error) {
	if err := draft.Validate(); err != nil {
		return domain.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return domain.Record{}, err
	}
	record, err := domain.NewRecord(s.idGen.New(), draft)
	if err != nil {
		return domain.Record{}, err
	}
	records = append(records, record)

	raw, err := codec.Marshal(records)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: %w", apperrors.ErrStorageFailure, err)
	}
	if err := s.store.Put(ctx, BlobKey, raw); err != nil {
		return domain.Record{}, fmt.Errorf("%w: write sessions: %w", apperrors.ErrStorageFailure, err)
	}
	return record, nil
}

// List returns every record in insertion order. Unlike the usecase it reports
// storage failures instead of degrading to an empty list.
func (s *SessionService) List(ctx context.Context) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *SessionService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, BlobKey); err != nil {
		return fmt.Errorf("%w: clear sessions: %w", apperrors.ErrStorageFailure, err)
	}
	return nil
}

func (s *SessionService) load(ctx context.Context) ([]domain.Record, error) {
	raw, ok, err := s.store.Get(ctx, BlobKey)
	if err != nil {
		return nil, fmt.Errorf("%w: read sessions: %w", apperrors.ErrStorageFailure, err)
	}
	if !ok || len(raw) == 0 {
		return []domain.Record{}, nil
	}
	records := []domain.Record{}
	if err := codec.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: stored sessions are corrupt: %w", apperrors.ErrStorageFailure, err)
	}
	if records == nil {
		records = []domain.Record{}
	}
	if err := domain.CheckStored(records); err != nil {
		return nil, fmt.Errorf("%w: stored sessions are corrupt: %w", apperrors.ErrStorageFailure, err)
	}
	return records, nil
}
