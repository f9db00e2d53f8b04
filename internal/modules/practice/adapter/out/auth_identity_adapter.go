package out

import (
	"context"
	"errors"

	authin "wellness/internal/modules/auth/port/in"
	"wellness/internal/modules/practice/domain"
	practiceout "wellness/internal/modules/practice/port/out"
	apperrors "wellness/internal/platform/errors"
)

// AuthIdentityAdapter resolves the session owner from the auth module's
// stored session. No backend round trip is made.
type AuthIdentityAdapter struct {
	auth authin.Usecase
}

func NewAuthIdentityAdapter(auth authin.Usecase) practiceout.IdentityProvider {
	return &AuthIdentityAdapter{auth: auth}
}

func (a *AuthIdentityAdapter) CurrentOwner(ctx context.Context) (domain.Owner, bool, error) {
	session, err := a.auth.CurrentSession(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotAuthenticated) {
			return domain.Owner{}, false, nil
		}
		return domain.Owner{}, false, err
	}
	return domain.Owner{UserID: session.User.ID, AccessToken: session.AccessToken}, true, nil
}
