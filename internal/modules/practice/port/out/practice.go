package out

import (
	"context"

	"wellness/internal/modules/practice/domain"
)

// RemoteSessionStore is the backend collection of training sessions.
type RemoteSessionStore interface {
	Insert(ctx context.Context, owner domain.Owner, record domain.SessionRecord) error
	Query(ctx context.Context, owner domain.Owner) ([]domain.SessionRecord, error)
}

// LocalSessionStore holds the whole list when nobody is signed in.
type LocalSessionStore interface {
	Load(ctx context.Context) ([]domain.SessionRecord, error)
	Save(ctx context.Context, records []domain.SessionRecord) error
}

// IdentityProvider reports the signed-in owner; ok is false for anonymous use.
type IdentityProvider interface {
	CurrentOwner(ctx context.Context) (owner domain.Owner, ok bool, err error)
}

type Journal interface {
	Write(ctx context.Context, dir string, records []domain.SessionRecord) ([]string, error)
}
