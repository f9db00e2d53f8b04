package in

import (
	"context"
	"time"

	practicedto "wellness/internal/modules/practice/dto"
	practicein "wellness/internal/modules/practice/port/in"
)

type CLIHandler struct {
	usecase practicein.Usecase
}

func NewCLIHandler(usecase practicein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Save(ctx context.Context, durationSeconds int) (practicedto.SaveOutput, error) {
	return h.usecase.Save(ctx, practicedto.SaveInput{DurationSeconds: durationSeconds})
}

// SaveAt saves a session recorded by the interactive timer at endedAt.
func (h CLIHandler) SaveAt(ctx context.Context, endedAt time.Time, durationSeconds int) (practicedto.SaveOutput, error) {
	return h.usecase.Save(ctx, practicedto.SaveInput{DurationSeconds: durationSeconds, EndedAt: endedAt})
}

func (h CLIHandler) List(ctx context.Context) ([]practicedto.RecordOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Export(ctx context.Context, dir string) (practicedto.ExportOutput, error) {
	return h.usecase.Export(ctx, practicedto.ExportInput{Dir: dir})
}
