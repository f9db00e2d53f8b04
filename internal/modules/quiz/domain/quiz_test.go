package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness/internal/modules/quiz/domain"
	apperrors "wellness/internal/platform/errors"
)

func completeResponse() domain.Response {
	r := domain.NewResponse()
	r.AgeRange = "26-35"
	r.RelationshipStatus = "dating"
	r.ProblemDuration = "1year+"
	r.Frequency = "often"
	return r
}

func TestResponseValidate(t *testing.T) {
	t.Parallel()
	require.NoError(t, completeResponse().Validate())

	cases := map[string]func(*domain.Response){
		"empty age":         func(r *domain.Response) { r.AgeRange = "" },
		"unknown status":    func(r *domain.Response) { r.RelationshipStatus = "widowed" },
		"unknown duration":  func(r *domain.Response) { r.ProblemDuration = "forever" },
		"unknown frequency": func(r *domain.Response) { r.Frequency = "never" },
		"anxiety too low":   func(r *domain.Response) { r.AnxietyLevel = 0 },
		"anxiety too high":  func(r *domain.Response) { r.AnxietyLevel = 11 },
		"unknown solution":  func(r *domain.Response) { r.TriedSolutions = []string{"kegel", "magic"} },
	}
	for name, mutate := range cases {
		mutate := mutate
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := completeResponse()
			mutate(&r)
			assert.ErrorIs(t, r.Validate(), apperrors.ErrValidation)
		})
	}
}

func TestResponseNormalizedDedupesAndSorts(t *testing.T) {
	t.Parallel()
	r := completeResponse()
	r.TriedSolutions = []string{"therapy", "kegel", "therapy", "breathing"}
	r.MainConcern = "  performance  "

	n := r.Normalized()
	assert.Equal(t, []string{"breathing", "kegel", "therapy"}, n.TriedSolutions)
	assert.Equal(t, "performance", n.MainConcern)
	assert.Equal(t, []string{"therapy", "kegel", "therapy", "breathing"}, r.TriedSolutions)
}

func TestWizardGatesFirstFourSteps(t *testing.T) {
	t.Parallel()
	w := domain.NewWizard()
	assert.Equal(t, domain.StepAge, w.Step())
	assert.False(t, w.CanAdvance())
	assert.ErrorIs(t, w.Next(), apperrors.ErrValidation)
	assert.Equal(t, domain.StepAge, w.Step())

	answers := []string{"18-25", "single", "less-3months", "rarely"}
	for i, answer := range answers {
		assert.ErrorIs(t, w.Choose("bogus"), apperrors.ErrValidation)
		require.NoError(t, w.Choose(answer))
		require.NoError(t, w.Next())
		assert.Equal(t, i+2, w.Step())
	}

	// Anxiety, solutions and concern are not gated.
	assert.True(t, w.CanAdvance())
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	assert.Equal(t, domain.StepConcern, w.Step())
	assert.True(t, w.Last())
	assert.False(t, w.CanAdvance())
	require.NoError(t, w.Next())
	assert.Equal(t, domain.StepConcern, w.Step())

	r := w.Response()
	assert.Equal(t, domain.DefaultAnxiety, r.AnxietyLevel)
	assert.Empty(t, r.TriedSolutions)
	require.NoError(t, r.Validate())
}

func TestWizardBackKeepsAnswers(t *testing.T) {
	t.Parallel()
	w := domain.NewWizard()
	w.Back()
	assert.Equal(t, domain.StepAge, w.Step())

	require.NoError(t, w.Choose("46+"))
	require.NoError(t, w.Next())
	w.Back()
	assert.Equal(t, "46+", w.Selected())
	assert.True(t, w.CanAdvance())
}

func TestWizardProgress(t *testing.T) {
	t.Parallel()
	w := domain.NewWizard()
	assert.InDelta(t, 100.0/7, w.Progress(), 1e-9)
	require.NoError(t, w.Choose("18-25"))
	require.NoError(t, w.Next())
	assert.InDelta(t, 200.0/7, w.Progress(), 1e-9)
}

func TestWizardSolutionsAndAnxiety(t *testing.T) {
	t.Parallel()
	w := domain.NewWizard()
	w.ToggleSolution("kegel")
	w.ToggleSolution("therapy")
	w.ToggleSolution("kegel")
	assert.False(t, w.HasSolution("kegel"))
	assert.True(t, w.HasSolution("therapy"))

	assert.ErrorIs(t, w.SetAnxiety(0), apperrors.ErrValidation)
	require.NoError(t, w.SetAnxiety(9))
	w.SetConcern("confidence")

	r := w.Response()
	assert.Equal(t, 9, r.AnxietyLevel)
	assert.Equal(t, []string{"therapy"}, r.TriedSolutions)
	assert.Equal(t, "confidence", r.MainConcern)

	r.TriedSolutions[0] = "changed"
	assert.True(t, w.HasSolution("therapy"))
}
