package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wellness/internal/modules/breathing/domain"
)

func TestPhaseBoundaries(t *testing.T) {
	t.Parallel()
	want := map[int]domain.Phase{
		0: domain.Inhale, 4: domain.Inhale,
		5: domain.Hold, 7: domain.Hold,
		8: domain.Exhale, 15: domain.Exhale,
	}
	for counter, phase := range want {
		assert.Equal(t, phase, domain.PhaseAt(counter), "counter %d", counter)
	}
}

func TestCountdownPerPhase(t *testing.T) {
	t.Parallel()
	var got []int
	for c := 0; c < domain.CycleLength; c++ {
		got = append(got, domain.CountdownAt(c))
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 2, 3, 4, 8, 7, 6, 5, 4, 3, 2, 1}, got)
}

func TestCycleTicksAndWraps(t *testing.T) {
	t.Parallel()
	var c domain.Cycle
	assert.Equal(t, domain.Inhale, c.Phase())

	var step domain.Step
	for i := 0; i < 4; i++ {
		step = c.Tick()
	}
	assert.Equal(t, 4, step.Counter)
	assert.Equal(t, domain.Inhale, step.Phase)

	step = c.Tick()
	assert.Equal(t, 5, step.Counter)
	assert.Equal(t, domain.Hold, step.Phase)
	assert.Equal(t, "Hold your breath...", step.Label)

	for c.Counter() != 15 {
		c.Tick()
	}
	assert.Equal(t, domain.Exhale, c.Phase())
	assert.Equal(t, "Breathe out slowly...", c.Step().Label)

	step = c.Tick()
	assert.Equal(t, 0, step.Counter)
	assert.Equal(t, domain.Inhale, step.Phase)
	assert.Equal(t, "Breathe in deeply...", step.Label)
}

func TestCycleStaysInRange(t *testing.T) {
	t.Parallel()
	var c domain.Cycle
	for i := 0; i < 10*domain.CycleLength; i++ {
		step := c.Tick()
		assert.GreaterOrEqual(t, step.Counter, 0)
		assert.Less(t, step.Counter, domain.CycleLength)
		assert.Positive(t, step.Countdown)
	}
	c.Reset()
	assert.Zero(t, c.Counter())
}
