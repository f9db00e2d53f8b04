package out

import (
	"context"
	"fmt"

	"wellness/internal/modules/quiz/domain"
	quizout "wellness/internal/modules/quiz/port/out"
	"wellness/internal/platform/supabase"
)

const quizResponsesTable = "quiz_responses"

type quizResponseRow struct {
	ID                 string   `json:"id,omitempty"`
	UserID             *string  `json:"user_id"`
	AgeRange           string   `json:"age_range"`
	RelationshipStatus string   `json:"relationship_status"`
	ProblemDuration    string   `json:"problem_duration"`
	Frequency          string   `json:"frequency"`
	AnxietyLevel       int      `json:"anxiety_level"`
	TriedSolutions     []string `json:"tried_solutions"`
	MainConcern        string   `json:"main_concern"`
}

func toRow(owner *domain.Owner, r domain.Response) quizResponseRow {
	row := quizResponseRow{
		AgeRange:           r.AgeRange,
		RelationshipStatus: r.RelationshipStatus,
		ProblemDuration:    r.ProblemDuration,
		Frequency:          r.Frequency,
		AnxietyLevel:       r.AnxietyLevel,
		TriedSolutions:     r.TriedSolutions,
		MainConcern:        r.MainConcern,
	}
	if row.TriedSolutions == nil {
		row.TriedSolutions = []string{}
	}
	if owner != nil {
		id := owner.UserID
		row.UserID = &id
	}
	return row
}

type SupabaseResponseStore struct {
	client *supabase.Client
}

func NewSupabaseResponseStore(client *supabase.Client) quizout.ResponseStore {
	return &SupabaseResponseStore{client: client}
}

func (s *SupabaseResponseStore) Insert(ctx context.Context, owner *domain.Owner, response domain.Response) (string, error) {
	token := ""
	if owner != nil {
		token = owner.AccessToken
	}
	var stored []quizResponseRow
	if err := s.client.Insert(ctx, token, quizResponsesTable, toRow(owner, response), &stored); err != nil {
		return "", fmt.Errorf("insert quiz response: %w", err)
	}
	if len(stored) == 0 {
		return "", nil
	}
	return stored[0].ID, nil
}
