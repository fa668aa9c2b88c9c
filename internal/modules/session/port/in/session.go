package in

import (
	"context"

	"focustrack/internal/modules/session/dto"
)

type Usecase interface {
	Append(ctx context.Context, input dto.AppendInput) (dto.RecordOutput, error)
	ListAll(ctx context.Context) ([]dto.RecordOutput, error)
	ClearAll(ctx context.Context) error
	Changes(ctx context.Context) (<-chan struct{}, error)
}
