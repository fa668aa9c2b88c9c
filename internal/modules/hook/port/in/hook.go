package in

import (
	"context"

	"focustrack/internal/modules/hook/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.HookInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Dispatch(ctx context.Context, event dto.EventInput) ([]dto.DeliveryResult, error)
}
