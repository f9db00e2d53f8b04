package in

import (
	"context"

	"wellness/internal/modules/quiz/dto"
)

type Usecase interface {
	Submit(ctx context.Context, input dto.SubmitInput) (dto.SubmitOutput, error)
}
