package service

import (
	"context"
	"fmt"
	"time"

	"focustrack/internal/modules/report/domain"
	reportout "focustrack/internal/modules/report/port/out"
	"focustrack/internal/platform/clock"
	"focustrack/internal/platform/markdown"
)

var reportBlock = markdown.Block{
	Start: "<!-- focustrack:report:start -->",
	End:   "<!-- focustrack:report:end -->",
}

type ReportService struct {
	source reportout.SessionSource
	notes  reportout.NoteStore
	clock  clock.Clock
	loc    *time.Location
}

func NewReportService(source reportout.SessionSource, notes reportout.NoteStore, clk clock.Clock, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{source: source, notes: notes, clock: clk, loc: loc}
}

func (s *ReportService) Location() *time.Location {
	return s.loc
}

func (s *ReportService) Build(ctx context.Context, recent int) (domain.Report, error) {
	entries, err := s.source.ListAll(ctx)
	if err != nil {
		return domain.Report{}, fmt.Errorf("load sessions: %w", err)
	}
	for i := range entries {
		entries[i].Date = entries[i].Date.In(s.loc)
	}
	return domain.Build(entries, s.clock.Now().In(s.loc), s.loc, recent), nil
}

// WriteNote replaces the managed report block of a markdown note, creating the
// note when it does not exist.
func (s *ReportService) WriteNote(ctx context.Context, path string, report domain.Report) (bool, error) {
	if s.notes == nil {
		return false, fmt.Errorf("note store is not configured")
	}
	content, exists, err := s.notes.Read(ctx, path)
	if err != nil {
		return false, err
	}
	meta := map[string]any{
		"focus_updated":     report.GeneratedAt.Format(time.RFC3339),
		"focus_all_minutes": report.Summary.AllTimeMinutes,
	}
	next, err := markdown.UpsertNote(content, reportBlock, domain.Markdown(report), meta)
	if err != nil {
		return false, fmt.Errorf("update note %s: %w", path, err)
	}
	if err := s.notes.Write(ctx, path, next); err != nil {
		return false, err
	}
	return !exists, nil
}
