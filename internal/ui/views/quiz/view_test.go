package quiz

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness/internal/modules/quiz/domain"
	quizdto "wellness/internal/modules/quiz/dto"
)

type fakePort struct {
	inputs []quizdto.SubmitInput
	err    error
}

func (f *fakePort) Submit(_ context.Context, in quizdto.SubmitInput) (quizdto.SubmitOutput, error) {
	f.inputs = append(f.inputs, in)
	return quizdto.SubmitOutput{ID: "row-1"}, f.err
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestGatedStepsRequireAnswer(t *testing.T) {
	t.Parallel()
	m := New(&fakePort{})
	m = press(m, "n")
	assert.Equal(t, domain.StepAge, wizardStep(m))
	assert.NotEmpty(t, m.Message())

	m = press(m, "down", "enter")
	assert.Equal(t, domain.StepRelationship, wizardStep(m))
	assert.Equal(t, "26-35", wizardResponse(m).AgeRange)
}

func TestFullWalkSubmitsAnswers(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := New(port)
	m = press(m, "enter", "enter", "enter", "enter")
	require.Equal(t, domain.StepAnxiety, wizardStep(m))
	m = press(m, "right", "right", "enter")
	require.Equal(t, domain.StepSolutions, wizardStep(m))
	m = press(m, " ", "down", " ", "enter")
	require.Equal(t, domain.StepConcern, wizardStep(m))
	require.True(t, m.Typing())

	m = press(m, "q", "u", "i", "c", "k")
	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	require.Len(t, port.inputs, 1)
	in := port.inputs[0]
	assert.Equal(t, "18-25", in.AgeRange)
	assert.Equal(t, "single", in.RelationshipStatus)
	assert.Equal(t, "less-3months", in.ProblemDuration)
	assert.Equal(t, "always", in.Frequency)
	assert.Equal(t, 7, in.AnxietyLevel)
	assert.Equal(t, []string{"kegel", "breathing"}, in.TriedSolutions)
	assert.Equal(t, "quick", in.MainConcern)
	assert.True(t, m.Done())

	m = press(m, "r")
	assert.False(t, m.Done())
	assert.Equal(t, domain.StepAge, wizardStep(m))
}

func TestSubmitFailureAllowsRetry(t *testing.T) {
	t.Parallel()
	port := &fakePort{err: errors.New("offline")}
	m := New(port)
	m = press(m, "enter", "enter", "enter", "enter", "enter", "enter")
	require.Equal(t, domain.StepConcern, wizardStep(m))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.False(t, m.Done())
	assert.Contains(t, m.Message(), "offline")

	port.err = nil
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.True(t, m.Done())
	assert.Len(t, port.inputs, 2)
}

func wizardStep(m Model) int {
	w := m.Wizard()
	return w.Step()
}

func wizardResponse(m Model) domain.Response {
	w := m.Wizard()
	return w.Response()
}
