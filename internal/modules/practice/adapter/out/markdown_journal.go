package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wellness/internal/modules/practice/domain"
	practiceout "wellness/internal/modules/practice/port/out"
	"wellness/internal/platform/markdown"
)

const journalBlock = "session"

// MarkdownJournal writes one note per session under
// <dir>/sessions/YYYY/MM/DD/HHMMSS-<exercise>.md.
type MarkdownJournal struct{}

func NewMarkdownJournal() practiceout.Journal {
	return MarkdownJournal{}
}

func (MarkdownJournal) Write(ctx context.Context, dir string, records []domain.SessionRecord) ([]string, error) {
	paths := make([]string, 0, len(records))
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		if record.Date.IsZero() {
			continue
		}
		path, err := writeNote(dir, record)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeNote(dir string, record domain.SessionRecord) (string, error) {
	date := record.Date.Local()
	noteDir := filepath.Join(dir, "sessions", date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(noteDir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	path := filepath.Join(noteDir, fmt.Sprintf("%s-%s.md", date.Format("150405"), markdown.Slug(domain.ExerciseStartStop)))

	note := markdown.Note{Body: fmt.Sprintf("# Practice %s\n", date.Format("2006-01-02 15:04"))}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if note, err = markdown.ParseNote(string(raw)); err != nil {
			return "", fmt.Errorf("read journal note %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("read journal note: %w", err)
	}

	// Generated keys win; keys the user added are carried over.
	existing := note.Meta
	note.Meta = map[string]any{
		"schema_version":   domain.SchemaVersion,
		"date":             record.Date.UTC().Format(time.RFC3339),
		"duration_seconds": record.Duration,
		"success":          record.Success(),
		"exercise_type":    domain.ExerciseStartStop,
	}
	note.Merge(existing)
	note.SetBlock(journalBlock, fmt.Sprintf("- Duration: %s\n- Result: %s", domain.FormatClock(record.Duration), record.Notes()))

	rendered, err := note.Render()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}
