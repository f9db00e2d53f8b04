package out

import (
	"context"
	"fmt"
	"net/url"

	"wellness/internal/modules/practice/domain"
	practiceout "wellness/internal/modules/practice/port/out"
	"wellness/internal/platform/supabase"
)

const trainingSessionsTable = "training_sessions"

type trainingSessionRow struct {
	ID           string `json:"id,omitempty"`
	UserID       string `json:"user_id"`
	Duration     int    `json:"duration"`
	ExerciseType string `json:"exercise_type"`
	Notes        string `json:"notes,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

type SupabaseSessionStore struct {
	client *supabase.Client
}

func NewSupabaseSessionStore(client *supabase.Client) practiceout.RemoteSessionStore {
	return &SupabaseSessionStore{client: client}
}

// Insert lets the backend stamp created_at; the stored row is the session date.
func (s *SupabaseSessionStore) Insert(ctx context.Context, owner domain.Owner, record domain.SessionRecord) error {
	row := trainingSessionRow{
		UserID:       owner.UserID,
		Duration:     record.Duration,
		ExerciseType: domain.ExerciseStartStop,
		Notes:        record.Notes(),
	}
	var stored []trainingSessionRow
	if err := s.client.Insert(ctx, owner.AccessToken, trainingSessionsTable, row, &stored); err != nil {
		return fmt.Errorf("insert training session: %w", err)
	}
	return nil
}

func (s *SupabaseSessionStore) Query(ctx context.Context, owner domain.Owner) ([]domain.SessionRecord, error) {
	query := url.Values{
		"select":  {"*"},
		"user_id": {"eq." + owner.UserID},
		"order":   {"created_at.desc"},
	}
	var rows []trainingSessionRow
	if err := s.client.Select(ctx, owner.AccessToken, trainingSessionsTable, query, &rows); err != nil {
		return nil, fmt.Errorf("query training sessions: %w", err)
	}
	records := make([]domain.SessionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.NewSessionRecord(domain.ParseDate(row.CreatedAt), row.Duration))
	}
	return records, nil
}
