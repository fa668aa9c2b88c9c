package in

import (
	"context"

	sessiondto "focustrack/internal/modules/session/dto"
	sessionin "focustrack/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]sessiondto.RecordOutput, error) {
	return h.usecase.ListAll(ctx)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.ClearAll(ctx)
}

type TUIHandler struct {
	usecase sessionin.Usecase
}

func NewTUIHandler(usecase sessionin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) ListSessions(ctx context.Context) ([]sessiondto.RecordOutput, error) {
	return h.usecase.ListAll(ctx)
}

func (h TUIHandler) ClearSessions(ctx context.Context) error {
	return h.usecase.ClearAll(ctx)
}

func (h TUIHandler) SessionChanges(ctx context.Context) (<-chan struct{}, error) {
	return h.usecase.Changes(ctx)
}
