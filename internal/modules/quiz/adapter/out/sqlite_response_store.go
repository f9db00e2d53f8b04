package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"wellness/internal/modules/quiz/domain"
	quizout "wellness/internal/modules/quiz/port/out"
	"wellness/internal/platform/clock"
	"wellness/internal/platform/id"
	"wellness/internal/platform/sqlitedb"
)

type SQLiteResponseStore struct {
	db    *sql.DB
	clock clock.Clock
	idGen id.Generator
}

func NewSQLiteResponseStore(db *sql.DB, clock clock.Clock, idGen id.Generator) quizout.ResponseStore {
	return &SQLiteResponseStore{db: db, clock: clock, idGen: idGen}
}

func (s *SQLiteResponseStore) Insert(ctx context.Context, owner *domain.Owner, response domain.Response) (string, error) {
	row := toRow(owner, response)
	solutions, err := json.Marshal(row.TriedSolutions)
	if err != nil {
		return "", fmt.Errorf("encode tried solutions: %w", err)
	}
	rowID := s.idGen.New()
	_, err = s.db.ExecContext(ctx, `
INSERT INTO quiz_responses (
  id, user_id, age_range, relationship_status, problem_duration, frequency,
  anxiety_level, tried_solutions, main_concern, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`,
		rowID,
		row.UserID,
		row.AgeRange,
		row.RelationshipStatus,
		row.ProblemDuration,
		row.Frequency,
		row.AnxietyLevel,
		string(solutions),
		row.MainConcern,
		s.clock.Now().UTC().Format(sqlitedb.TimeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("insert quiz response: %w", err)
	}
	return rowID, nil
}
