package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"focustrack/internal/modules/hook/domain"
	"focustrack/internal/modules/hook/dto"
	hookout "focustrack/internal/modules/hook/port/out"
)

type HookService struct {
	store  hookout.ManifestStore
	host   hookout.Host
	logger hclog.Logger
}

// NewHookService accepts a nil host; doctor then skips the lifecycle check
// and dispatch reports every delivery as failed.
func NewHookService(store hookout.ManifestStore, host hookout.Host, logger hclog.Logger) *HookService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &HookService{store: store, host: host, logger: logger}
}

func (s *HookService) List(ctx context.Context) ([]dto.HookInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HookInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.HookInfo{
			Name:    m.Name,
			Version: m.Version,
			Enabled: m.Enabled,
			Binary:  m.Binary,
			Events:  append([]string(nil), m.Events...),
		})
	}
	return out, nil
}

func (s *HookService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// Dispatch delivers event to every enabled hook subscribed to it. A failing
// hook yields an undelivered result; only an unreadable manifest file or an
// invalid event is returned as an error.
func (s *HookService) Dispatch(ctx context.Context, event domain.Event) ([]dto.DeliveryResult, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DeliveryResult, 0, len(manifests))
	for _, m := range manifests {
		if !m.Enabled || !m.Subscribes(event.Name) {
			continue
		}
		result := dto.DeliveryResult{Hook: m.Name}
		if err := s.deliver(ctx, m, event); err != nil {
			result.Error = err.Error()
			s.logger.Warn("hook delivery failed", "hook", m.Name, "event", event.Name, "error", err)
		} else {
			result.Delivered = true
			s.logger.Debug("hook delivered", "hook", m.Name, "event", event.Name)
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *HookService) deliver(ctx context.Context, m domain.Manifest, event domain.Event) error {
	if s.host == nil {
		return fmt.Errorf("hook host is not configured")
	}
	if err := checksumMatches(m.Binary, m.SHA256); err != nil {
		return err
	}
	return s.host.Deliver(ctx, m, event)
}

func (s *HookService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate hook name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read hook binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
