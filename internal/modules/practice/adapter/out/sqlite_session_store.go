package out

import (
	"context"
	"database/sql"
	"fmt"

	"wellness/internal/modules/practice/domain"
	practiceout "wellness/internal/modules/practice/port/out"
	"wellness/internal/platform/id"
	"wellness/internal/platform/sqlitedb"
)

type SQLiteSessionStore struct {
	db    *sql.DB
	idGen id.Generator
}

func NewSQLiteSessionStore(db *sql.DB, idGen id.Generator) practiceout.RemoteSessionStore {
	return &SQLiteSessionStore{db: db, idGen: idGen}
}

func (s *SQLiteSessionStore) Insert(ctx context.Context, owner domain.Owner, record domain.SessionRecord) error {
	const stmt = `
INSERT INTO training_sessions (id, user_id, duration, exercise_type, notes, created_at)
VALUES (?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		s.idGen.New(),
		owner.UserID,
		record.Duration,
		domain.ExerciseStartStop,
		record.Notes(),
		record.Date.UTC().Format(sqlitedb.TimeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert training session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Query(ctx context.Context, owner domain.Owner) ([]domain.SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT duration, created_at FROM training_sessions
WHERE user_id = ?
ORDER BY created_at DESC;
`, owner.UserID)
	if err != nil {
		return nil, fmt.Errorf("query training sessions: %w", err)
	}
	defer rows.Close()

	records := []domain.SessionRecord{}
	for rows.Next() {
		var (
			duration  int
			createdAt string
		)
		if err := rows.Scan(&duration, &createdAt); err != nil {
			return nil, fmt.Errorf("scan training session: %w", err)
		}
		records = append(records, domain.NewSessionRecord(domain.ParseDate(createdAt), duration))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate training sessions: %w", err)
	}
	return records, nil
}
