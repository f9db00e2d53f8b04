package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"wellness/internal/modules/practice/domain"
	practiceout "wellness/internal/modules/practice/port/out"
	"wellness/internal/platform/clock"
	apperrors "wellness/internal/platform/errors"
)

type SessionService struct {
	clock   clock.Clock
	remote  practiceout.RemoteSessionStore
	local   practiceout.LocalSessionStore
	journal practiceout.Journal
}

func NewSessionService(clock clock.Clock, remote practiceout.RemoteSessionStore, local practiceout.LocalSessionStore, journal practiceout.Journal) *SessionService {
	return &SessionService{clock: clock, remote: remote, local: local, journal: journal}
}

// Save stores a finished session with the remote store when owner is set and
// with the local fallback otherwise. A zero endedAt is stamped with the clock.
func (s *SessionService) Save(ctx context.Context, owner *domain.Owner, endedAt time.Time, duration int) (domain.SessionRecord, error) {
	if duration <= 0 {
		return domain.SessionRecord{}, apperrors.ErrNothingToSave
	}
	if endedAt.IsZero() {
		endedAt = s.clock.Now()
	}
	record := domain.NewSessionRecord(endedAt, duration)
	if owner != nil {
		if s.remote == nil {
			return domain.SessionRecord{}, fmt.Errorf("remote session store is not configured")
		}
		if err := s.remote.Insert(ctx, *owner, record); err != nil {
			return domain.SessionRecord{}, err
		}
		return record, nil
	}

	records, err := s.local.Load(ctx)
	if err != nil {
		return domain.SessionRecord{}, err
	}
	records = append(records, record)
	if err := s.local.Save(ctx, records); err != nil {
		return domain.SessionRecord{}, err
	}
	return record, nil
}

// List returns the active store's records, newest first.
func (s *SessionService) List(ctx context.Context, owner *domain.Owner) ([]domain.SessionRecord, error) {
	var (
		records []domain.SessionRecord
		err     error
	)
	if owner != nil {
		if s.remote == nil {
			return nil, fmt.Errorf("remote session store is not configured")
		}
		records, err = s.remote.Query(ctx, *owner)
	} else {
		records, err = s.local.Load(ctx)
	}
	if err != nil {
		return nil, err
	}
	sorted := make([]domain.SessionRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })
	return sorted, nil
}

func (s *SessionService) Export(ctx context.Context, dir string, records []domain.SessionRecord) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: export dir is required", apperrors.ErrInvalidInput)
	}
	if s.journal == nil {
		return nil, fmt.Errorf("journal is not configured")
	}
	return s.journal.Write(ctx, dir, records)
}
