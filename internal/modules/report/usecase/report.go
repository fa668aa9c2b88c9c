package usecase

import (
	"context"
	"fmt"

	"focustrack/internal/modules/report/domain"
	"focustrack/internal/modules/report/dto"
	reportin "focustrack/internal/modules/report/port/in"
	"focustrack/internal/modules/report/service"
	apperrors "focustrack/internal/platform/errors"
)

type Interactor struct {
	svc *service.ReportService
}

func NewInteractor(svc *service.ReportService) reportin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Build(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error) {
	r, err := i.svc.Build(ctx, recentOrDefault(input.Recent))
	if err != nil {
		return dto.ReportOutput{}, err
	}
	return toOutput(r), nil
}

func (i *Interactor) Markdown(ctx context.Context, input dto.ReportInput) (string, error) {
	r, err := i.svc.Build(ctx, recentOrDefault(input.Recent))
	if err != nil {
		return "", err
	}
	return domain.Markdown(r), nil
}

func (i *Interactor) WriteNote(ctx context.Context, input dto.WriteNoteInput) (dto.WriteNoteOutput, error) {
	if input.Path == "" {
		return dto.WriteNoteOutput{}, fmt.Errorf("%w: note path is required", apperrors.ErrInvalidInput)
	}
	r, err := i.svc.Build(ctx, recentOrDefault(input.Recent))
	if err != nil {
		return dto.WriteNoteOutput{}, err
	}
	created, err := i.svc.WriteNote(ctx, input.Path, r)
	if err != nil {
		return dto.WriteNoteOutput{}, err
	}
	return dto.WriteNoteOutput{Path: input.Path, Created: created}, nil
}

func recentOrDefault(n int) int {
	if n <= 0 {
		return domain.RecentDefault
	}
	return n
}

func toOutput(r domain.Report) dto.ReportOutput {
	out := dto.ReportOutput{
		GeneratedAt:       r.GeneratedAt,
		TodayMinutes:      r.Summary.TodayMinutes,
		AllTimeMinutes:    r.Summary.AllTimeMinutes,
		TotalDistractions: r.Summary.TotalDistractions,
		Sessions:          r.Summary.Sessions,
		Days:              make([]dto.DayOutput, 0, len(r.Days)),
		Categories:        make([]dto.CategoryOutput, 0, len(r.Categories)),
		Recent:            make([]dto.SessionOutput, 0, len(r.Recent)),
	}
	for _, d := range r.Days {
		out.Days = append(out.Days, dto.DayOutput{
			Date:    d.Day.Format("2006-01-02"),
			Label:   d.Day.Format("02.01"),
			Minutes: d.Minutes,
		})
	}
	for _, c := range r.Categories {
		out.Categories = append(out.Categories, dto.CategoryOutput{
			Name:    c.Name,
			Minutes: c.Minutes,
			Seconds: c.Seconds,
			Color:   c.Color,
			Share:   c.Share,
		})
	}
	for _, e := range r.Recent {
		out.Recent = append(out.Recent, dto.SessionOutput{
			ID:              e.ID,
			Category:        e.Category,
			DurationSeconds: e.Duration,
			Minutes:         e.Duration / 60,
			Distractions:    e.Distractions,
			PerfectFocus:    e.Distractions == 0,
			Date:            e.Date,
		})
	}
	return out
}
