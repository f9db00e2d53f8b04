package service

import (
	"context"

	"wellness/internal/modules/progress/domain"
	progressout "wellness/internal/modules/progress/port/out"
	"wellness/internal/platform/clock"
)

type ProgressService struct {
	clock  clock.Clock
	source progressout.RecordSource
}

func NewProgressService(clock clock.Clock, source progressout.RecordSource) *ProgressService {
	return &ProgressService{clock: clock, source: source}
}

func (s *ProgressService) Summary(ctx context.Context) (domain.Summary, error) {
	records, err := s.source.Records(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(records, s.clock.Now()), nil
}
