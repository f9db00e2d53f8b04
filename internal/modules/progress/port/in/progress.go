package in

import (
	"context"

	"wellness/internal/modules/progress/dto"
)

type Usecase interface {
	Summary(ctx context.Context) (dto.SummaryOutput, error)
}
