package usecase

import (
	"context"

	"focustrack/internal/modules/hook/domain"
	"focustrack/internal/modules/hook/dto"
	hookin "focustrack/internal/modules/hook/port/in"
	"focustrack/internal/modules/hook/service"
)

type Interactor struct {
	svc *service.HookService
}

func NewInteractor(svc *service.HookService) hookin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.HookInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Dispatch(ctx context.Context, event dto.EventInput) ([]dto.DeliveryResult, error) {
	ev := domain.Event{Name: event.Name, OccurredAt: event.OccurredAt}
	if p := event.Session; p != nil {
		ev.Session = &domain.Session{
			ID:              p.ID,
			Category:        p.Category,
			DurationSeconds: p.DurationSeconds,
			Distractions:    p.Distractions,
			Date:            p.Date,
		}
	}
	return i.svc.Dispatch(ctx, ev)
}
