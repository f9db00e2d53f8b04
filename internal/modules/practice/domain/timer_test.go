package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wellness/internal/modules/practice/domain"
	apperrors "wellness/internal/platform/errors"
)

func TestTimerStartPauseSave(t *testing.T) {
	t.Parallel()
	var timer domain.Timer
	require.Equal(t, domain.TimerIdle, timer.State())

	gen, ok := timer.Start()
	require.True(t, ok)
	for i := 0; i < 200; i++ {
		require.True(t, timer.Tick(gen))
	}
	require.True(t, timer.Pause())
	require.Equal(t, domain.TimerPaused, timer.State())
	require.True(t, timer.CanSave())

	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	rec, err := timer.Record(now)
	require.NoError(t, err)
	require.Equal(t, 200, rec.Duration)
	require.True(t, rec.Success())
	require.Equal(t, now, rec.Date)
	require.Equal(t, 200, timer.Seconds(), "record must not reset the timer")

	timer.Reset()
	require.Equal(t, domain.TimerIdle, timer.State())
	require.Zero(t, timer.Seconds())
}

func TestTimerDropsStaleTicks(t *testing.T) {
	t.Parallel()
	var timer domain.Timer
	first, _ := timer.Start()
	require.True(t, timer.Tick(first))
	timer.Pause()
	require.False(t, timer.Tick(first), "paused timer must not count")

	second, ok := timer.Start()
	require.True(t, ok)
	require.NotEqual(t, first, second)
	require.False(t, timer.Tick(first), "tick of the previous run is stale")
	require.True(t, timer.Tick(second))
	require.Equal(t, 2, timer.Seconds())

	timer.Reset()
	require.False(t, timer.Tick(second))
	require.Zero(t, timer.Seconds())
}

func TestTimerStartWhileRunningKeepsGeneration(t *testing.T) {
	t.Parallel()
	var timer domain.Timer
	gen, _ := timer.Start()
	again, ok := timer.Start()
	require.False(t, ok)
	require.Equal(t, gen, again)
}

func TestTimerToggle(t *testing.T) {
	t.Parallel()
	var timer domain.Timer
	_, started := timer.Toggle()
	require.True(t, started)
	require.True(t, timer.Running())
	_, started = timer.Toggle()
	require.False(t, started)
	require.Equal(t, domain.TimerPaused, timer.State())
}

func TestTimerRecordRequiresPausedWithTime(t *testing.T) {
	t.Parallel()
	var timer domain.Timer
	_, err := timer.Record(time.Now())
	require.ErrorIs(t, err, apperrors.ErrNothingToSave)

	gen, _ := timer.Start()
	timer.Tick(gen)
	_, err = timer.Record(time.Now())
	require.ErrorIs(t, err, apperrors.ErrNothingToSave, "running timer cannot be saved")

	timer.Pause()
	timer.Reset()
	timer.Start()
	timer.Pause()
	_, err = timer.Record(time.Now())
	require.ErrorIs(t, err, apperrors.ErrNothingToSave, "zero counter cannot be saved")
}
