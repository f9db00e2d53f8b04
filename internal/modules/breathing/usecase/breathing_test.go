package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	breathingdto "wellness/internal/modules/breathing/dto"
	"wellness/internal/modules/breathing/service"
	"wellness/internal/modules/breathing/usecase"
	apperrors "wellness/internal/platform/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGuideEmitsFullCycles(t *testing.T) {
	uc := usecase.NewInteractor(service.NewGuideService())
	var steps []breathingdto.StepOutput
	err := uc.Guide(context.Background(), breathingdto.GuideInput{Cycles: 2, Period: time.Millisecond}, func(s breathingdto.StepOutput) {
		steps = append(steps, s)
	})
	require.NoError(t, err)
	require.Len(t, steps, 32)
	assert.Equal(t, 0, steps[0].Counter)
	assert.Equal(t, "inhale", steps[0].Phase)
	assert.Equal(t, "hold", steps[5].Phase)
	assert.Equal(t, "exhale", steps[15].Phase)
	assert.Equal(t, 1, steps[15].Countdown)
	assert.Equal(t, 0, steps[16].Counter)
	assert.Equal(t, 15, steps[31].Counter)
}

func TestGuideStopsOnCancel(t *testing.T) {
	uc := usecase.NewInteractor(service.NewGuideService())
	ctx, cancel := context.WithCancel(context.Background())
	count := 0
	err := uc.Guide(ctx, breathingdto.GuideInput{Cycles: 100, Period: time.Millisecond}, func(breathingdto.StepOutput) {
		count++
		if count == 3 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, count, 3)
}

func TestGuideRejectsBadInput(t *testing.T) {
	uc := usecase.NewInteractor(service.NewGuideService())
	err := uc.Guide(context.Background(), breathingdto.GuideInput{Cycles: 0}, func(breathingdto.StepOutput) {})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
