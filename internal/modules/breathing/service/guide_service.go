package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wellness/internal/modules/breathing/domain"
	apperrors "wellness/internal/platform/errors"
	"wellness/internal/platform/ticker"
)

type GuideService struct{}

func NewGuideService() *GuideService {
	return &GuideService{}
}

// Run emits the opening step immediately and one more per tick until cycles
// full breaths are done. emit runs on the ticker goroutine.
func (s *GuideService) Run(ctx context.Context, cycles int, period time.Duration, emit func(domain.Step)) error {
	if cycles <= 0 {
		return fmt.Errorf("%w: cycles must be positive", apperrors.ErrInvalidInput)
	}
	if period <= 0 {
		return fmt.Errorf("%w: period must be positive", apperrors.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var cycle domain.Cycle
	remaining := cycles*domain.CycleLength - 1
	emit(cycle.Step())
	if remaining == 0 {
		return nil
	}

	finished := make(chan struct{})
	var once sync.Once
	t := ticker.Start(ctx, period, func() {
		if remaining == 0 {
			return
		}
		emit(cycle.Tick())
		remaining--
		if remaining == 0 {
			once.Do(func() { close(finished) })
		}
	})
	defer t.Stop()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
