package storage

import (
	"context"
	"time"

	"github.com/iudanet/chirpy/internal/models"
)

// TokenStorage defines interface for refresh token persistence.
//
// Implementations must provide per-row atomicity: concurrent operations on
// different tokens do not interfere, and a lookup observes either the pre-
// or post-state of a concurrent revoke.
type TokenStorage interface {
	// SaveRefreshToken stores a new refresh token
	// Returns ErrTokenAlreadyExists if the token value is taken
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error

	// GetRefreshToken retrieves refresh token by token value
	// Returns ErrTokenNotFound if token doesn't exist
	GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)

	// RevokeRefreshToken stamps revoked_at and updated_at with when.
	// Revoking an already-revoked token is a no-op: the original
	// revocation timestamp stands. Returns ErrTokenNotFound if the
	// token doesn't exist.
	RevokeRefreshToken(ctx context.Context, token string, when time.Time) error
}
