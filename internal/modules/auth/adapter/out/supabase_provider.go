package out

import (
	"context"
	"time"

	"wellness/internal/modules/auth/domain"
	authout "wellness/internal/modules/auth/port/out"
	"wellness/internal/platform/clock"
	"wellness/internal/platform/supabase"
)

type SupabaseProvider struct {
	client *supabase.Client
	clock  clock.Clock
}

func NewSupabaseProvider(client *supabase.Client, clock clock.Clock) authout.Provider {
	return &SupabaseProvider{client: client, clock: clock}
}

func (p *SupabaseProvider) SignUp(ctx context.Context, email, password string) (domain.Session, error) {
	session, err := p.client.SignUp(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	return p.toSession(session), nil
}

func (p *SupabaseProvider) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	session, err := p.client.SignIn(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	return p.toSession(session), nil
}

func (p *SupabaseProvider) Refresh(ctx context.Context, refreshToken string) (domain.Session, error) {
	session, err := p.client.Refresh(ctx, refreshToken)
	if err != nil {
		return domain.Session{}, err
	}
	return p.toSession(session), nil
}

func (p *SupabaseProvider) SignOut(ctx context.Context, accessToken string) error {
	return p.client.SignOut(ctx, accessToken)
}

func (p *SupabaseProvider) GetUser(ctx context.Context, accessToken string) (domain.User, error) {
	user, err := p.client.GetUser(ctx, accessToken)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{ID: user.ID, Email: user.Email}, nil
}

func (p *SupabaseProvider) toSession(s supabase.Session) domain.Session {
	out := domain.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		User:         domain.User{ID: s.User.ID, Email: s.User.Email},
	}
	if s.AccessToken != "" && s.ExpiresIn > 0 {
		out.ExpiresAt = p.clock.Now().Add(time.Duration(s.ExpiresIn) * time.Second)
	}
	return out
}
