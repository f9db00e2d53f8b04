package usecase

import (
	"context"

	practice "wellness/internal/modules/practice/domain"
	progressdto "wellness/internal/modules/progress/dto"
	progressin "wellness/internal/modules/progress/port/in"
	"wellness/internal/modules/progress/service"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Summary(ctx context.Context) (progressdto.SummaryOutput, error) {
	summary, err := i.svc.Summary(ctx)
	if err != nil {
		return progressdto.SummaryOutput{}, err
	}
	recent := make([]progressdto.SessionOutput, 0, len(summary.Recent))
	for _, r := range summary.Recent {
		recent = append(recent, progressdto.SessionOutput{Date: r.Date, DurationSeconds: r.Duration, Success: r.Success()})
	}
	return progressdto.SummaryOutput{
		Streak:         summary.Streak,
		Total:          summary.Total,
		Successful:     summary.Successful,
		WeeklyPercent:  summary.WeeklyPercent,
		AverageSeconds: summary.AverageSeconds,
		AverageClock:   practice.FormatClock(summary.AverageSeconds),
		SuccessRate:    summary.SuccessRate,
		Recent:         recent,
	}, nil
}
