package in

import (
	"context"

	"focustrack/internal/modules/report/dto"
)

type Usecase interface {
	Build(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error)
	Markdown(ctx context.Context, input dto.ReportInput) (string, error)
	WriteNote(ctx context.Context, input dto.WriteNoteInput) (dto.WriteNoteOutput, error)
}
