package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/chirpy/internal/models"
	"github.com/iudanet/chirpy/internal/server/storage"
)

// SessionService owns the session lifecycle: it turns credentials into an
// (access token, refresh token) pair, a presented refresh token into a new
// access token, and a presented refresh token into a revocation. It holds
// no per-request state and is safe for concurrent use.
type SessionService struct {
	users  storage.UserStorage
	tokens storage.TokenStorage
	codec  *TokenService
}

// NewSessionService creates a session service over the given stores and
// token codec
func NewSessionService(users storage.UserStorage, tokens storage.TokenStorage, codec *TokenService) *SessionService {
	return &SessionService{
		users:  users,
		tokens: tokens,
		codec:  codec,
	}
}

// Session is the result of a successful login
type Session struct {
	User         *models.User
	AccessToken  string
	RefreshToken *models.RefreshToken
}

// Login authenticates the user by email and password and issues a token
// pair. An unknown email and a wrong password both return
// ErrInvalidCredentials; callers must not be able to tell which check
// failed. The effective access token TTL is floored at MinAccessTokenTTL:
// a shorter requested TTL is silently raised, a longer one is honored.
//
// If persisting the refresh token fails, the whole login fails: no access
// token is ever returned without a stored refresh token behind it.
func (s *SessionService) Login(ctx context.Context, email, password string, ttl time.Duration) (*Session, error) {
	if ttl < MinAccessTokenTTL {
		ttl = MinAccessTokenTTL
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := VerifyPassword(user.HashedPassword, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	refresh, err := IssueRefreshToken(ctx, s.tokens, user.ID)
	if err != nil {
		return nil, err
	}

	access, err := s.codec.Encode(user.ID, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	return &Session{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Refresh exchanges a still-active refresh token for a fresh one-hour
// access token. It fails with ErrUnauthorized when the token is unknown,
// expired, or revoked. The refresh token itself is not rotated or
// extended, so concurrent refreshes against the same token all succeed.
func (s *SessionService) Refresh(ctx context.Context, token string) (string, error) {
	entry, err := s.tokens.GetRefreshToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return "", ErrUnauthorized
		}
		return "", fmt.Errorf("failed to look up refresh token: %w", err)
	}

	now := time.Now()
	if !now.Before(entry.ExpiresAt) {
		return "", ErrUnauthorized
	}
	if entry.RevokedAt != nil && !entry.RevokedAt.After(now) {
		return "", ErrUnauthorized
	}

	access, err := s.codec.Encode(entry.UserID, MinAccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to create access token: %w", err)
	}
	return access, nil
}

// Revoke marks the refresh token as revoked. Expiry and revocation are
// terminal: once revoked the token can never become active again, and
// revoking twice keeps the original revocation timestamp. Returns
// storage.ErrTokenNotFound if no such token exists.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	err := s.tokens.RevokeRefreshToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return err
		}
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
