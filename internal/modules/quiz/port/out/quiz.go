package out

import (
	"context"

	"wellness/internal/modules/quiz/domain"
)

// ResponseStore inserts a questionnaire answer. owner is nil for anonymous
// submissions. It returns the stored row id.
type ResponseStore interface {
	Insert(ctx context.Context, owner *domain.Owner, response domain.Response) (string, error)
}

type IdentityProvider interface {
	CurrentOwner(ctx context.Context) (owner domain.Owner, ok bool, err error)
}
