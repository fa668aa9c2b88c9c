package in

import (
	"context"

	reportdto "focustrack/internal/modules/report/dto"
	reportin "focustrack/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Render produces the report in the requested format. styled enables terminal
// markdown styling and is ignored by the other formats.
func (h CLIHandler) Render(ctx context.Context, format Format, recent int, styled bool, width int) (string, error) {
	input := reportdto.ReportInput{Recent: recent}
	switch format {
	case FormatMarkdown:
		md, err := h.usecase.Markdown(ctx, input)
		if err != nil {
			return "", err
		}
		return RenderMarkdown(md, styled, width)
	case FormatJSON:
		r, err := h.usecase.Build(ctx, input)
		if err != nil {
			return "", err
		}
		return RenderJSON(r)
	default:
		r, err := h.usecase.Build(ctx, input)
		if err != nil {
			return "", err
		}
		return RenderText(r), nil
	}
}

func (h CLIHandler) WriteNote(ctx context.Context, path string, recent int) (reportdto.WriteNoteOutput, error) {
	return h.usecase.WriteNote(ctx, reportdto.WriteNoteInput{Path: path, Recent: recent})
}

type TUIHandler struct {
	usecase reportin.Usecase
}

func NewTUIHandler(usecase reportin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Report(ctx context.Context) (reportdto.ReportOutput, error) {
	return h.usecase.Build(ctx, reportdto.ReportInput{})
}
