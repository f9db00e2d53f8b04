package in

import (
	"context"

	"wellness/internal/modules/breathing/dto"
)

type Usecase interface {
	// Guide emits one step per period for the requested number of cycles.
	// It returns ctx.Err() when interrupted.
	Guide(ctx context.Context, input dto.GuideInput, emit func(dto.StepOutput)) error
}
