package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-hclog"

	hookdto "focustrack/internal/modules/hook/dto"
	hookin "focustrack/internal/modules/hook/port/in"
	"focustrack/internal/modules/session/domain"
	sessiondto "focustrack/internal/modules/session/dto"
	sessionin "focustrack/internal/modules/session/port/in"
	sessionout "focustrack/internal/modules/session/port/out"
	"focustrack/internal/modules/session/service"
	"focustrack/internal/platform/clock"
)

const hookTimeout = 10 * time.Second

type Interactor struct {
	svc     *service.SessionService
	watcher sessionout.ChangeWatcher
	hooks   hookin.Usecase
	clock   clock.Clock
	logger  hclog.Logger
}

// NewInteractor wires the session usecase. watcher and hooks may be nil.
func NewInteractor(svc *service.SessionService, watcher sessionout.ChangeWatcher, hooks hookin.Usecase, clk clock.Clock, logger hclog.Logger) sessionin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{svc: svc, watcher: watcher, hooks: hooks, clock: clk, logger: logger}
}

func (i *Interactor) Append(ctx context.Context, input sessiondto.AppendInput) (sessiondto.RecordOutput, error) {
	record, err := i.svc.Append(ctx, domain.Draft{
		Category:     input.Category,
		Duration:     input.DurationSeconds,
		Distractions: input.Distractions,
		Date:         input.Date,
	})
	if err != nil {
		i.logger.Error("append session failed", "category", input.Category, "error", err)
		return sessiondto.RecordOutput{}, err
	}
	i.logger.Info("session recorded", "id", record.ID, "category", record.Category, "duration", record.Duration, "distractions", record.Distractions)

	out := toOutput(record)
	i.dispatch(ctx, hookdto.EventInput{
		Name:       hookdto.EventSessionRecorded,
		OccurredAt: record.Date,
		Session: &hookdto.SessionPayload{
			ID:              out.ID,
			Category:        out.Category,
			DurationSeconds: out.DurationSeconds,
			Distractions:    out.Distractions,
			Date:            out.Date,
		},
	})
	return out, nil
}

// ListAll never fails: an unreadable or corrupt store is logged and reads as empty.
func (i *Interactor) ListAll(ctx context.Context) ([]sessiondto.RecordOutput, error) {
	records, err := i.svc.List(ctx)
	if err != nil {
		i.logger.Warn("session log unreadable, showing empty history", "error", err)
		return []sessiondto.RecordOutput{}, nil
	}
	out := make([]sessiondto.RecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, toOutput(r))
	}
	return out, nil
}

func (i *Interactor) ClearAll(ctx context.Context) error {
	if err := i.svc.Clear(ctx); err != nil {
		i.logger.Error("clear sessions failed", "error", err)
		return err
	}
	i.logger.Info("sessions cleared")
	i.dispatch(ctx, hookdto.EventInput{Name: hookdto.EventSessionCleared, OccurredAt: i.clock.Now()})
	return nil
}

func (i *Interactor) Changes(ctx context.Context) (<-chan struct{}, error) {
	if i.watcher == nil {
		return nil, errors.New("session change watcher is not configured")
	}
	return i.watcher.Watch(ctx)
}

func (i *Interactor) dispatch(ctx context.Context, event hookdto.EventInput) {
	if i.hooks == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), hookTimeout)
	defer cancel()
	results, err := i.hooks.Dispatch(ctx, event)
	if err != nil {
		i.logger.Warn("hook dispatch failed", "event", event.Name, "error", err)
		return
	}
	for _, r := range results {
		if !r.Delivered {
			i.logger.Warn("hook delivery failed", "hook", r.Hook, "event", event.Name, "error", r.Error)
		}
	}
}

func toOutput(r domain.Record) sessiondto.RecordOutput {
	return sessiondto.RecordOutput{
		ID:              r.ID,
		Category:        r.Category,
		DurationSeconds: r.Duration,
		Distractions:    r.Distractions,
		Date:            r.Date,
	}
}
