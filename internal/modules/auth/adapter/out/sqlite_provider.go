package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"wellness/internal/modules/auth/domain"
	authout "wellness/internal/modules/auth/port/out"
	"wellness/internal/platform/clock"
	apperrors "wellness/internal/platform/errors"
	"wellness/internal/platform/id"
	"wellness/internal/platform/sqlitedb"
)

// TokenTTL matches the default GoTrue access token lifetime.
const TokenTTL = time.Hour

// SQLiteProvider is the self-hosted identity backend. Accounts are confirmed
// on sign-up, so SignUp always opens a session.
type SQLiteProvider struct {
	db    *sql.DB
	clock clock.Clock
	idGen id.Generator
	cost  int
}

func NewSQLiteProvider(db *sql.DB, clock clock.Clock, idGen id.Generator) authout.Provider {
	return &SQLiteProvider{db: db, clock: clock, idGen: idGen, cost: bcrypt.DefaultCost}
}

func (p *SQLiteProvider) SignUp(ctx context.Context, email, password string) (domain.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	user := domain.User{ID: p.idGen.New(), Email: email}
	_, err = p.db.ExecContext(ctx, `
INSERT INTO users (id, email, password_hash, created_at)
VALUES (?, ?, ?, ?);
`, user.ID, user.Email, string(hash), p.clock.Now().UTC().Format(sqlitedb.TimeLayout))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return domain.Session{}, fmt.Errorf("%w: user already registered", apperrors.ErrAuth)
		}
		return domain.Session{}, fmt.Errorf("insert user: %w", err)
	}
	return p.issue(ctx, user)
}

func (p *SQLiteProvider) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	var (
		user domain.User
		hash string
	)
	err := p.db.QueryRowContext(ctx, `SELECT id, email, password_hash FROM users WHERE email = ?;`, email).
		Scan(&user.ID, &user.Email, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, invalidCredentials()
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domain.Session{}, invalidCredentials()
	}
	return p.issue(ctx, user)
}

// Refresh rotates the token pair. The refresh token outlives the access
// token and is single use.
func (p *SQLiteProvider) Refresh(ctx context.Context, refreshToken string) (domain.Session, error) {
	if refreshToken == "" {
		return domain.Session{}, fmt.Errorf("%w: refresh token is missing", apperrors.ErrAuth)
	}
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Session{}, fmt.Errorf("begin refresh: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var user domain.User
	err = tx.QueryRowContext(ctx, `
SELECT u.id, u.email FROM auth_tokens t
JOIN users u ON u.id = t.user_id
WHERE t.refresh_token = ?;
`, refreshToken).Scan(&user.ID, &user.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, fmt.Errorf("%w: invalid refresh token", apperrors.ErrAuth)
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("lookup refresh token: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM auth_tokens WHERE refresh_token = ?;`, refreshToken); err != nil {
		return domain.Session{}, fmt.Errorf("revoke refresh token: %w", err)
	}
	session, err := p.insertToken(ctx, tx, user)
	if err != nil {
		return domain.Session{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Session{}, fmt.Errorf("commit refresh: %w", err)
	}
	return session, nil
}

func (p *SQLiteProvider) SignOut(ctx context.Context, accessToken string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE token = ?;`, accessToken); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (p *SQLiteProvider) GetUser(ctx context.Context, accessToken string) (domain.User, error) {
	var (
		user      domain.User
		expiresAt string
	)
	err := p.db.QueryRowContext(ctx, `
SELECT u.id, u.email, t.expires_at FROM auth_tokens t
JOIN users u ON u.id = t.user_id
WHERE t.token = ?;
`, accessToken).Scan(&user.ID, &user.Email, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("%w: invalid token", apperrors.ErrAuth)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("lookup token: %w", err)
	}
	expiry, err := time.Parse(sqlitedb.TimeLayout, expiresAt)
	if err != nil || !p.clock.Now().Before(expiry) {
		return domain.User{}, fmt.Errorf("%w: token expired", apperrors.ErrAuth)
	}
	return user, nil
}

func (p *SQLiteProvider) issue(ctx context.Context, user domain.User) (domain.Session, error) {
	return p.insertToken(ctx, p.db, user)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (p *SQLiteProvider) insertToken(ctx context.Context, db execer, user domain.User) (domain.Session, error) {
	session := domain.Session{
		AccessToken:  p.idGen.New(),
		RefreshToken: p.idGen.New(),
		ExpiresAt:    p.clock.Now().Add(TokenTTL),
		User:         user,
	}
	_, err := db.ExecContext(ctx, `INSERT INTO auth_tokens (token, refresh_token, user_id, expires_at) VALUES (?, ?, ?, ?);`,
		session.AccessToken, session.RefreshToken, user.ID, session.ExpiresAt.UTC().Format(sqlitedb.TimeLayout))
	if err != nil {
		return domain.Session{}, fmt.Errorf("insert token: %w", err)
	}
	return session, nil
}

func invalidCredentials() error {
	return fmt.Errorf("%w: %w: invalid login credentials", apperrors.ErrAuth, apperrors.ErrInvalidCredentials)
}
