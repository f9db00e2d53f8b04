package usecase

import (
	"context"
	"time"

	"wellness/internal/modules/breathing/domain"
	breathingdto "wellness/internal/modules/breathing/dto"
	breathingin "wellness/internal/modules/breathing/port/in"
	"wellness/internal/modules/breathing/service"
)

// DefaultPeriod is one counter step.
const DefaultPeriod = time.Second

type Interactor struct {
	svc *service.GuideService
}

func NewInteractor(svc *service.GuideService) breathingin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Guide(ctx context.Context, input breathingdto.GuideInput, emit func(breathingdto.StepOutput)) error {
	period := input.Period
	if period == 0 {
		period = DefaultPeriod
	}
	return i.svc.Run(ctx, input.Cycles, period, func(step domain.Step) {
		emit(breathingdto.StepOutput{
			Counter:   step.Counter,
			Phase:     step.Phase.String(),
			Countdown: step.Countdown,
			Label:     step.Label,
		})
	})
}
