package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "wellness/internal/platform/errors"
)

const MinPasswordLength = 6

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is a signed-in user together with the token the backend issued.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

func (s Session) Valid(now time.Time) bool {
	if s.AccessToken == "" || s.User.ID == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// Renewable reports whether an expired session can still be refreshed.
func (s Session) Renewable() bool {
	return s.RefreshToken != "" && s.User.ID != ""
}

type EventKind int

const (
	SignedIn EventKind = iota + 1
	SignedOut
)

func (k EventKind) String() string {
	switch k {
	case SignedIn:
		return "signed_in"
	case SignedOut:
		return "signed_out"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers on every auth-state change. User is nil
// after a sign-out.
type Event struct {
	Kind EventKind
	User *User
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateCredentials(email, password string) error {
	email = NormalizeEmail(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("%w: email address is invalid", apperrors.ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", apperrors.ErrValidation, MinPasswordLength)
	}
	return nil
}
