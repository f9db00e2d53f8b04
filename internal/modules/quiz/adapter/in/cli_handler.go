package in

import (
	"context"

	quizdto "wellness/internal/modules/quiz/dto"
	quizin "wellness/internal/modules/quiz/port/in"
)

type CLIHandler struct {
	usecase quizin.Usecase
}

func NewCLIHandler(usecase quizin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Submit(ctx context.Context, input quizdto.SubmitInput) (quizdto.SubmitOutput, error) {
	return h.usecase.Submit(ctx, input)
}
