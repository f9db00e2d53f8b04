package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authout "wellness/internal/modules/auth/adapter/out"
	"wellness/internal/modules/auth/domain"
	authdto "wellness/internal/modules/auth/dto"
	"wellness/internal/modules/auth/service"
	"wellness/internal/modules/auth/usecase"
	apperrors "wellness/internal/platform/errors"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type movableClock struct{ now time.Time }

func (c *movableClock) Now() time.Time { return c.now }

type fakeProvider struct {
	session    domain.Session
	signInErr  error
	getUserErr error
	signOutErr error
	revoked    []string

	renewed    domain.Session
	refreshErr error
	refreshed  []string
}

func (f *fakeProvider) SignUp(_ context.Context, email, _ string) (domain.Session, error) {
	s := f.session
	s.User.Email = email
	return s, nil
}

func (f *fakeProvider) SignIn(_ context.Context, email, _ string) (domain.Session, error) {
	if f.signInErr != nil {
		return domain.Session{}, f.signInErr
	}
	s := f.session
	s.User.Email = email
	return s, nil
}

func (f *fakeProvider) SignOut(_ context.Context, token string) error {
	f.revoked = append(f.revoked, token)
	return f.signOutErr
}

func (f *fakeProvider) Refresh(_ context.Context, refreshToken string) (domain.Session, error) {
	f.refreshed = append(f.refreshed, refreshToken)
	if f.refreshErr != nil {
		return domain.Session{}, f.refreshErr
	}
	return f.renewed, nil
}

func (f *fakeProvider) GetUser(context.Context, string) (domain.User, error) {
	if f.getUserErr != nil {
		return domain.User{}, f.getUserErr
	}
	return f.session.User, nil
}

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T, provider *fakeProvider) *service.AuthService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "auth-session.json")
	return service.NewAuthService(fixedClock{now: now}, provider, authout.NewFileSessionStore(path), nil)
}

func validSession() domain.Session {
	return domain.Session{
		AccessToken: "tok-1",
		ExpiresAt:   now.Add(time.Hour),
		User:        domain.User{ID: "user-1"},
	}
}

func TestSignInPersistsSessionAndNotifiesSubscribers(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{session: validSession()}
	svc := newService(t, provider)
	uc := usecase.NewInteractor(svc)

	var events []authdto.AuthEvent
	sub := uc.Subscribe(func(ev authdto.AuthEvent) { events = append(events, ev) })
	defer sub.Unsubscribe()

	user, err := uc.SignIn(context.Background(), authdto.CredentialsInput{Email: " Me@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", user.Email)

	session, err := uc.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", session.AccessToken)
	assert.Equal(t, "user-1", session.User.ID)

	require.Len(t, events, 1)
	assert.True(t, events[0].SignedIn)
	require.NotNil(t, events[0].User)
	assert.Equal(t, "user-1", events[0].User.ID)
}

func TestUnsubscribeStopsDeliveryAndIsIdempotent(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{session: validSession()}
	svc := newService(t, provider)
	uc := usecase.NewInteractor(svc)

	calls := 0
	sub := uc.Subscribe(func(authdto.AuthEvent) { calls++ })
	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 0, svc.Hub().Len())

	_, err := uc.SignIn(context.Background(), authdto.CredentialsInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestListenerMayUnsubscribeItselfDuringDelivery(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{session: validSession()}
	svc := newService(t, provider)
	uc := usecase.NewInteractor(svc)

	var sub interface{ Unsubscribe() }
	calls := 0
	sub = uc.Subscribe(func(authdto.AuthEvent) {
		calls++
		sub.Unsubscribe()
	})

	ctx := context.Background()
	_, err := uc.SignIn(ctx, authdto.CredentialsInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, uc.SignOut(ctx))
	assert.Equal(t, 1, calls)
}

func TestSignInValidationRejectsBeforeBackend(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{signInErr: errors.New("must not be called")}
	svc := newService(t, provider)
	uc := usecase.NewInteractor(svc)

	_, err := uc.SignIn(context.Background(), authdto.CredentialsInput{Email: "nope", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = uc.SignIn(context.Background(), authdto.CredentialsInput{Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSignInFailureLeavesNoSession(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{signInErr: apperrors.ErrInvalidCredentials}
	svc := newService(t, provider)
	uc := usecase.NewInteractor(svc)

	_, err := uc.SignIn(context.Background(), authdto.CredentialsInput{Email: "a@b.c", Password: "secret1"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = uc.CurrentSession(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestSignUpPendingConfirmationDoesNotOpenSession(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{session: domain.Session{User: domain.User{ID: "user-2"}}}
	svc := newService(t, provider)
	uc := usecase.NewInteractor(svc)

	out, err := uc.SignUp(context.Background(), authdto.CredentialsInput{Email: "new@b.c", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, out.ConfirmationRequired)
	assert.Equal(t, "user-2", out.User.ID)

	_, err = uc.CurrentSession(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestSignOutClearsSessionEvenWhenRevokeFails(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{session: validSession(), signOutErr: apperrors.ErrNetwork}
	svc := newService(t, provider)
	uc := usecase.NewInteractor(svc)
	ctx := context.Background()

	_, err := uc.SignIn(ctx, authdto.CredentialsInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	var last authdto.AuthEvent
	sub := uc.Subscribe(func(ev authdto.AuthEvent) { last = ev })
	defer sub.Unsubscribe()

	require.NoError(t, uc.SignOut(ctx))
	assert.Equal(t, []string{"tok-1"}, provider.revoked)
	assert.False(t, last.SignedIn)
	assert.Nil(t, last.User)

	_, err = uc.CurrentSession(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestCurrentUserWithoutSessionIsNotAuthenticated(t *testing.T) {
	t.Parallel()
	svc := newService(t, &fakeProvider{})
	uc := usecase.NewInteractor(svc)

	_, err := uc.CurrentUser(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestCurrentUserRejectedTokenClearsSession(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{session: validSession()}
	svc := newService(t, provider)
	uc := usecase.NewInteractor(svc)
	ctx := context.Background()

	_, err := uc.SignIn(ctx, authdto.CredentialsInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	provider.getUserErr = apperrors.ErrAuth
	_, err = uc.CurrentUser(ctx)
	require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)

	_, err = uc.CurrentSession(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestCurrentUserNetworkErrorKeepsSession(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{session: validSession()}
	svc := newService(t, provider)
	uc := usecase.NewInteractor(svc)
	ctx := context.Background()

	_, err := uc.SignIn(ctx, authdto.CredentialsInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	provider.getUserErr = apperrors.ErrNetwork
	_, err = uc.CurrentUser(ctx)
	require.ErrorIs(t, err, apperrors.ErrNetwork)

	_, err = uc.CurrentSession(ctx)
	assert.NoError(t, err)
}

func TestExpiredSessionIsDropped(t *testing.T) {
	t.Parallel()
	expired := validSession()
	expired.ExpiresAt = now.Add(-time.Minute)
	svc := newService(t, &fakeProvider{session: expired})
	uc := usecase.NewInteractor(svc)
	ctx := context.Background()

	_, err := uc.SignIn(ctx, authdto.CredentialsInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	_, err = uc.CurrentSession(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func newRefreshingService(t *testing.T, provider *fakeProvider) (*service.AuthService, *movableClock) {
	t.Helper()
	clk := &movableClock{now: now}
	path := filepath.Join(t.TempDir(), "auth-session.json")
	return service.NewAuthService(clk, provider, authout.NewFileSessionStore(path), nil), clk
}

func renewableSession() domain.Session {
	s := validSession()
	s.RefreshToken = "refresh-1"
	return s
}

func TestExpiredSessionIsRefreshed(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{
		session: renewableSession(),
		renewed: domain.Session{
			AccessToken:  "tok-2",
			RefreshToken: "refresh-2",
			ExpiresAt:    now.Add(61*time.Minute + time.Hour),
			User:         domain.User{ID: "user-1", Email: "a@b.c"},
		},
	}
	svc, clk := newRefreshingService(t, provider)
	uc := usecase.NewInteractor(svc)
	ctx := context.Background()

	_, err := uc.SignIn(ctx, authdto.CredentialsInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	var events []authdto.AuthEvent
	sub := uc.Subscribe(func(ev authdto.AuthEvent) { events = append(events, ev) })
	defer sub.Unsubscribe()

	clk.now = now.Add(61 * time.Minute)
	session, err := uc.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", session.AccessToken)
	assert.Equal(t, "user-1", session.User.ID)
	assert.Equal(t, []string{"refresh-1"}, provider.refreshed)
	assert.Empty(t, events, "a refresh is not a sign-out")

	// The rotated pair is what later calls see.
	session, err = uc.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", session.AccessToken)
	assert.Len(t, provider.refreshed, 1)
}

func TestRejectedRefreshSignsOut(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{
		session:    renewableSession(),
		refreshErr: fmt.Errorf("%w: invalid refresh token", apperrors.ErrAuth),
	}
	svc, clk := newRefreshingService(t, provider)
	uc := usecase.NewInteractor(svc)
	ctx := context.Background()

	_, err := uc.SignIn(ctx, authdto.CredentialsInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	var events []authdto.AuthEvent
	sub := uc.Subscribe(func(ev authdto.AuthEvent) { events = append(events, ev) })
	defer sub.Unsubscribe()

	clk.now = now.Add(61 * time.Minute)
	_, err = uc.CurrentSession(ctx)
	require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	require.Len(t, events, 1)
	assert.False(t, events[0].SignedIn)
}

func TestRefreshNetworkFailureKeepsSession(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{
		session:    renewableSession(),
		refreshErr: fmt.Errorf("%w: dial tcp: refused", apperrors.ErrNetwork),
	}
	svc, clk := newRefreshingService(t, provider)
	uc := usecase.NewInteractor(svc)
	ctx := context.Background()

	_, err := uc.SignIn(ctx, authdto.CredentialsInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	clk.now = now.Add(61 * time.Minute)
	_, err = uc.CurrentSession(ctx)
	require.ErrorIs(t, err, apperrors.ErrNetwork)
	assert.False(t, errors.Is(err, apperrors.ErrNotAuthenticated))

	// Back online, the kept refresh token still works.
	provider.refreshErr = nil
	provider.renewed = renewableSession()
	provider.renewed.ExpiresAt = clk.now.Add(time.Hour)
	_, err = uc.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"refresh-1", "refresh-1"}, provider.refreshed)
}
