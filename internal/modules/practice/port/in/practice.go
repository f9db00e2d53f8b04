package in

import (
	"context"

	"wellness/internal/modules/practice/dto"
)

type Usecase interface {
	Save(ctx context.Context, input dto.SaveInput) (dto.SaveOutput, error)
	List(ctx context.Context) ([]dto.RecordOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
