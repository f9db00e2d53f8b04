package supabase

import (
	"context"
	"net/http"
	"time"
)

type User struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
}

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp registers a user. When the project requires email confirmation the
// returned session has no access token and only the user is populated.
func (c *Client) SignUp(ctx context.Context, email, password string) (Session, error) {
	var resp struct {
		Session
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := c.do(ctx, authEndpoint, http.MethodPost, "/auth/v1/signup", "", nil, credentials{Email: email, Password: password}, &resp); err != nil {
		return Session{}, err
	}
	session := resp.Session
	if session.User.ID == "" {
		session.User = User{ID: resp.ID, Email: resp.Email}
	}
	return session, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	var session Session
	err := c.do(ctx, authEndpoint, http.MethodPost, "/auth/v1/token?grant_type=password", "", nil, credentials{Email: email, Password: password}, &session)
	return session, err
}

// Refresh exchanges a refresh token for a new session. GoTrue rotates the
// refresh token, so the returned one replaces the old.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	var session Session
	body := struct {
		RefreshToken string `json:"refresh_token"`
	}{RefreshToken: refreshToken}
	err := c.do(ctx, authEndpoint, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", "", nil, body, &session)
	return session, err
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, authEndpoint, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil, nil)
}

func (c *Client) GetUser(ctx context.Context, accessToken string) (User, error) {
	var user User
	err := c.do(ctx, authEndpoint, http.MethodGet, "/auth/v1/user", accessToken, nil, nil, &user)
	return user, err
}
