package domain

import (
	"fmt"
	"slices"

	apperrors "wellness/internal/platform/errors"
)

const TotalSteps = 7

const (
	StepAge = iota + 1
	StepRelationship
	StepDuration
	StepFrequency
	StepAnxiety
	StepSolutions
	StepConcern
)

var stepTitles = map[int]string{
	StepAge:          "Age range",
	StepRelationship: "Relationship status",
	StepDuration:     "Problem duration",
	StepFrequency:    "Frequency",
	StepAnxiety:      "Anxiety level",
	StepSolutions:    "Solutions tried",
	StepConcern:      "Main concern",
}

var stepQuestions = map[int]string{
	StepAge:          "How old are you?",
	StepRelationship: "What is your current status?",
	StepDuration:     "How long have you been facing this?",
	StepFrequency:    "How often does it happen?",
	StepAnxiety:      "How much does it affect your anxiety? (1-10)",
	StepSolutions:    "Which solutions have you already tried?",
	StepConcern:      "What is your biggest concern?",
}

// Wizard walks the questionnaire one step at a time. Steps 1-4 cannot be
// left until their single-choice answer is set.
type Wizard struct {
	step     int
	response Response
}

func NewWizard() *Wizard {
	return &Wizard{step: StepAge, response: NewResponse()}
}

func (w *Wizard) Step() int { return w.step }

func (w *Wizard) Title() string { return stepTitles[w.step] }

func (w *Wizard) Question() string { return stepQuestions[w.step] }

func (w *Wizard) Response() Response {
	out := w.response
	out.TriedSolutions = slices.Clone(w.response.TriedSolutions)
	return out
}

// Progress is step/7 as a percentage.
func (w *Wizard) Progress() float64 {
	return float64(w.step) / TotalSteps * 100
}

func (w *Wizard) Last() bool { return w.step == TotalSteps }

// Options returns the single-choice options of the current step, or nil.
func (w *Wizard) Options() []Option {
	switch w.step {
	case StepAge:
		return AgeRanges
	case StepRelationship:
		return RelationshipStatuses
	case StepDuration:
		return ProblemDurations
	case StepFrequency:
		return Frequencies
	case StepSolutions:
		return Solutions
	default:
		return nil
	}
}

// Selected is the current answer for a single-choice step.
func (w *Wizard) Selected() string {
	switch w.step {
	case StepAge:
		return w.response.AgeRange
	case StepRelationship:
		return w.response.RelationshipStatus
	case StepDuration:
		return w.response.ProblemDuration
	case StepFrequency:
		return w.response.Frequency
	default:
		return ""
	}
}

func (w *Wizard) CanAdvance() bool {
	if w.step >= TotalSteps {
		return false
	}
	switch w.step {
	case StepAge, StepRelationship, StepDuration, StepFrequency:
		return w.Selected() != ""
	default:
		return true
	}
}

func (w *Wizard) Next() error {
	if w.step >= TotalSteps {
		return nil
	}
	if !w.CanAdvance() {
		return fmt.Errorf("%w: %s requires an answer", apperrors.ErrValidation, stepTitles[w.step])
	}
	w.step++
	return nil
}

func (w *Wizard) Back() {
	if w.step > StepAge {
		w.step--
	}
}

// Choose sets the answer of the current single-choice step.
func (w *Wizard) Choose(value string) error {
	if !Allowed(w.Options(), value) {
		return fmt.Errorf("%w: %q is not an option for %s", apperrors.ErrValidation, value, stepTitles[w.step])
	}
	switch w.step {
	case StepAge:
		w.response.AgeRange = value
	case StepRelationship:
		w.response.RelationshipStatus = value
	case StepDuration:
		w.response.ProblemDuration = value
	case StepFrequency:
		w.response.Frequency = value
	case StepSolutions:
		w.ToggleSolution(value)
	}
	return nil
}

func (w *Wizard) SetAnxiety(level int) error {
	if level < MinAnxiety || level > MaxAnxiety {
		return fmt.Errorf("%w: anxiety level must be between %d and %d", apperrors.ErrValidation, MinAnxiety, MaxAnxiety)
	}
	w.response.AnxietyLevel = level
	return nil
}

func (w *Wizard) ToggleSolution(tag string) {
	if i := slices.Index(w.response.TriedSolutions, tag); i >= 0 {
		w.response.TriedSolutions = slices.Delete(w.response.TriedSolutions, i, i+1)
		return
	}
	w.response.TriedSolutions = append(w.response.TriedSolutions, tag)
}

func (w *Wizard) HasSolution(tag string) bool {
	return slices.Contains(w.response.TriedSolutions, tag)
}

func (w *Wizard) SetConcern(text string) {
	w.response.MainConcern = text
}
