package out

import (
	"context"
	"encoding/json"
	"fmt"

	"wellness/internal/modules/practice/domain"
	practiceout "wellness/internal/modules/practice/port/out"
	"wellness/internal/platform/kv"
)

// LocalStorageKey is the key the session list lives under in local storage.
const LocalStorageKey = "wellness-sessions"

type LocalSessionStore struct {
	kv kv.Store
}

func NewLocalSessionStore(store kv.Store) practiceout.LocalSessionStore {
	return &LocalSessionStore{kv: store}
}

func (s *LocalSessionStore) Load(_ context.Context) ([]domain.SessionRecord, error) {
	raw, ok, err := s.kv.Get(LocalStorageKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []domain.SessionRecord{}, nil
	}
	records := []domain.SessionRecord{}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode local sessions: %w", err)
	}
	return records, nil
}

func (s *LocalSessionStore) Save(_ context.Context, records []domain.SessionRecord) error {
	if records == nil {
		records = []domain.SessionRecord{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode local sessions: %w", err)
	}
	return s.kv.Set(LocalStorageKey, string(payload))
}
