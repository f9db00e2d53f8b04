package out

import (
	"context"

	"wellness/internal/modules/auth/domain"
)

// Provider is the identity backend. SignUp returns a session without an
// access token when the account still needs email confirmation.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (domain.Session, error)
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	// Refresh trades the refresh token of an expired session for a new one.
	Refresh(ctx context.Context, refreshToken string) (domain.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (domain.User, error)
}

// SessionStore persists the signed-in session between runs.
type SessionStore interface {
	SaveSession(ctx context.Context, session domain.Session) error
	LoadSession(ctx context.Context) (domain.Session, error)
	ClearSession(ctx context.Context) error
}
