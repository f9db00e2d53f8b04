package domain

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	apperrors "wellness/internal/platform/errors"
)

const (
	MinAnxiety     = 1
	MaxAnxiety     = 10
	DefaultAnxiety = 5
)

type Option struct {
	Value string
	Label string
}

var (
	AgeRanges = []Option{
		{"18-25", "18-25 years"},
		{"26-35", "26-35 years"},
		{"36-45", "36-45 years"},
		{"46+", "46+ years"},
	}
	RelationshipStatuses = []Option{
		{"single", "Single"},
		{"dating", "Dating"},
		{"married", "Married / living together"},
		{"complicated", "It's complicated"},
	}
	ProblemDurations = []Option{
		{"less-3months", "Less than 3 months"},
		{"3-6months", "3 to 6 months"},
		{"6-12months", "6 to 12 months"},
		{"1year+", "More than a year"},
	}
	Frequencies = []Option{
		{"always", "Always"},
		{"often", "Often"},
		{"sometimes", "Sometimes"},
		{"rarely", "Rarely"},
	}
	Solutions = []Option{
		{"kegel", "Kegel exercises"},
		{"breathing", "Breathing techniques"},
		{"startstop", "Start-stop technique"},
		{"squeeze", "Squeeze technique"},
		{"medication", "Medication"},
		{"therapy", "Therapy"},
		{"supplements", "Supplements"},
		{"none", "None yet"},
	}
)

// Owner identifies who submits. A nil *Owner is an anonymous submission.
type Owner struct {
	UserID      string
	AccessToken string
}

type Response struct {
	AgeRange           string
	RelationshipStatus string
	ProblemDuration    string
	Frequency          string
	AnxietyLevel       int
	TriedSolutions     []string
	MainConcern        string
}

func NewResponse() Response {
	return Response{AnxietyLevel: DefaultAnxiety, TriedSolutions: []string{}}
}

// Normalized trims the free text and returns solutions deduplicated and sorted.
func (r Response) Normalized() Response {
	out := r
	out.MainConcern = strings.TrimSpace(r.MainConcern)
	seen := map[string]struct{}{}
	solutions := make([]string, 0, len(r.TriedSolutions))
	for _, s := range r.TriedSolutions {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		solutions = append(solutions, s)
	}
	sort.Strings(solutions)
	out.TriedSolutions = solutions
	return out
}

func (r Response) Validate() error {
	checks := []struct {
		field string
		value string
		opts  []Option
	}{
		{"age_range", r.AgeRange, AgeRanges},
		{"relationship_status", r.RelationshipStatus, RelationshipStatuses},
		{"problem_duration", r.ProblemDuration, ProblemDurations},
		{"frequency", r.Frequency, Frequencies},
	}
	for _, c := range checks {
		if !Allowed(c.opts, c.value) {
			return fmt.Errorf("%w: %s %q is not allowed", apperrors.ErrValidation, c.field, c.value)
		}
	}
	if r.AnxietyLevel < MinAnxiety || r.AnxietyLevel > MaxAnxiety {
		return fmt.Errorf("%w: anxiety_level must be between %d and %d", apperrors.ErrValidation, MinAnxiety, MaxAnxiety)
	}
	for _, s := range r.TriedSolutions {
		if !Allowed(Solutions, s) {
			return fmt.Errorf("%w: tried_solutions %q is not allowed", apperrors.ErrValidation, s)
		}
	}
	return nil
}

func Allowed(opts []Option, value string) bool {
	return slices.ContainsFunc(opts, func(o Option) bool { return o.Value == value })
}
