package in

import (
	"context"
	"time"

	breathingdto "wellness/internal/modules/breathing/dto"
	breathingin "wellness/internal/modules/breathing/port/in"
)

type CLIHandler struct {
	usecase breathingin.Usecase
}

func NewCLIHandler(usecase breathingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Guide(ctx context.Context, cycles int, period time.Duration, emit func(breathingdto.StepOutput)) error {
	return h.usecase.Guide(ctx, breathingdto.GuideInput{Cycles: cycles, Period: period}, emit)
}
