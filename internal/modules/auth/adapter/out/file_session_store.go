package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"wellness/internal/modules/auth/domain"
	authout "wellness/internal/modules/auth/port/out"
	apperrors "wellness/internal/platform/errors"
)

type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) authout.SessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) SaveSession(_ context.Context, session domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create auth session dir: %w", err)
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal auth session: %w", err)
	}
	if err := renameio.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write auth session: %w", err)
	}
	return nil
}

func (s *FileSessionStore) LoadSession(_ context.Context) (domain.Session, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Session{}, apperrors.ErrNotAuthenticated
		}
		return domain.Session{}, fmt.Errorf("read auth session: %w", err)
	}
	session := domain.Session{}
	if err := json.Unmarshal(payload, &session); err != nil {
		return domain.Session{}, fmt.Errorf("decode auth session: %w", err)
	}
	if session.AccessToken == "" {
		return domain.Session{}, apperrors.ErrNotAuthenticated
	}
	return session, nil
}

func (s *FileSessionStore) ClearSession(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear auth session: %w", err)
	}
	return nil
}
