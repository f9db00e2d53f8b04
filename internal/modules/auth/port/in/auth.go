package in

import (
	"context"

	"wellness/internal/modules/auth/dto"
)

// Subscription is returned by Subscribe. Unsubscribe must be called on
// teardown; calling it more than once is harmless.
type Subscription interface {
	Unsubscribe()
}

type Usecase interface {
	SignUp(ctx context.Context, input dto.CredentialsInput) (dto.SignUpOutput, error)
	SignIn(ctx context.Context, input dto.CredentialsInput) (dto.UserOutput, error)
	SignOut(ctx context.Context) error
	// CurrentUser verifies the stored session with the backend.
	CurrentUser(ctx context.Context) (dto.UserOutput, error)
	// CurrentSession reads the stored session without a backend round trip.
	CurrentSession(ctx context.Context) (dto.SessionOutput, error)
	Subscribe(listener func(dto.AuthEvent)) Subscription
}
