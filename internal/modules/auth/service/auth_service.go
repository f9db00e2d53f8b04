package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"wellness/internal/modules/auth/domain"
	authout "wellness/internal/modules/auth/port/out"
	"wellness/internal/platform/clock"
	apperrors "wellness/internal/platform/errors"
	applog "wellness/internal/platform/log"
)

type AuthService struct {
	clock    clock.Clock
	provider authout.Provider
	store    authout.SessionStore
	hub      *Hub
	log      zerolog.Logger
}

func NewAuthService(clock clock.Clock, provider authout.Provider, store authout.SessionStore, hub *Hub) *AuthService {
	if hub == nil {
		hub = NewHub()
	}
	return &AuthService{clock: clock, provider: provider, store: store, hub: hub, log: applog.WithComponent("auth")}
}

func (s *AuthService) Hub() *Hub { return s.hub }

// SignUp registers the account. confirmationRequired is true when the
// backend did not open a session yet.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (domain.User, bool, error) {
	if err := domain.ValidateCredentials(email, password); err != nil {
		return domain.User{}, false, err
	}
	session, err := s.provider.SignUp(ctx, domain.NormalizeEmail(email), password)
	if err != nil {
		return domain.User{}, false, err
	}
	if session.AccessToken == "" {
		s.log.Info().Str("user_id", session.User.ID).Msg("sign-up pending email confirmation")
		return session.User, true, nil
	}
	if err := s.open(ctx, session); err != nil {
		return domain.User{}, false, err
	}
	return session.User, false, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (domain.User, error) {
	if err := domain.ValidateCredentials(email, password); err != nil {
		return domain.User{}, err
	}
	session, err := s.provider.SignIn(ctx, domain.NormalizeEmail(email), password)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.open(ctx, session); err != nil {
		return domain.User{}, err
	}
	return session.User, nil
}

// SignOut always forgets the local session; a failed backend revoke is only logged.
func (s *AuthService) SignOut(ctx context.Context) error {
	session, err := s.store.LoadSession(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNotAuthenticated) {
		return err
	}
	if err == nil && session.AccessToken != "" {
		if revokeErr := s.provider.SignOut(ctx, session.AccessToken); revokeErr != nil {
			s.log.Warn().Err(revokeErr).Msg("backend sign-out failed")
		}
	}
	return s.close(ctx)
}

// Current returns the stored session. An expired session is renewed with its
// refresh token; it is dropped only when the backend rejects the refresh.
// Other refresh failures (network) keep the session so the caller fails
// instead of silently acting anonymous.
func (s *AuthService) Current(ctx context.Context) (domain.Session, error) {
	session, err := s.store.LoadSession(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	now := s.clock.Now()
	if session.Valid(now) {
		return session, nil
	}
	if session.Renewable() {
		renewed, refreshErr := s.provider.Refresh(ctx, session.RefreshToken)
		switch {
		case refreshErr == nil && renewed.Valid(now):
			if err := s.store.SaveSession(ctx, renewed); err != nil {
				return domain.Session{}, fmt.Errorf("persist session: %w", err)
			}
			s.log.Debug().Str("user_id", renewed.User.ID).Msg("session refreshed")
			return renewed, nil
		case refreshErr != nil && !errors.Is(refreshErr, apperrors.ErrAuth):
			return domain.Session{}, fmt.Errorf("refresh session: %w", refreshErr)
		case refreshErr != nil:
			s.log.Info().Err(refreshErr).Msg("refresh rejected")
		}
	}
	if err := s.close(ctx); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{}, apperrors.ErrNotAuthenticated
}

// Verify asks the backend whether the stored token is still accepted.
func (s *AuthService) Verify(ctx context.Context) (domain.User, error) {
	session, err := s.Current(ctx)
	if err != nil {
		return domain.User{}, err
	}
	user, err := s.provider.GetUser(ctx, session.AccessToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrAuth) || errors.Is(err, apperrors.ErrNotAuthenticated) {
			if closeErr := s.close(ctx); closeErr != nil {
				return domain.User{}, closeErr
			}
			return domain.User{}, apperrors.ErrNotAuthenticated
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *AuthService) open(ctx context.Context, session domain.Session) error {
	if err := s.store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	user := session.User
	s.log.Info().Str("user_id", user.ID).Msg("signed in")
	s.hub.Publish(domain.Event{Kind: domain.SignedIn, User: &user})
	return nil
}

func (s *AuthService) close(ctx context.Context) error {
	if err := s.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info().Msg("signed out")
	s.hub.Publish(domain.Event{Kind: domain.SignedOut})
	return nil
}
