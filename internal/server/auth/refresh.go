package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/chirpy/internal/models"
	"github.com/iudanet/chirpy/internal/server/storage"
)

const (
	// refreshTokenBytes is the entropy of a refresh token. 32 bytes of
	// crypto/rand rendered as 64 hex characters makes store collisions
	// negligible and the value safe to carry as a bearer credential.
	refreshTokenBytes = 32

	// RefreshTokenTTL is the lifetime of a refresh token
	RefreshTokenTTL = 60 * 24 * time.Hour

	// maxIssueAttempts bounds retries on a token-value collision
	maxIssueAttempts = 3
)

// NewRefreshToken generates a new opaque refresh token value: a fixed-width
// hex string carrying 256 bits of entropy.
func NewRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// IssueRefreshToken generates a refresh token for the user and persists it
// with a 60-day expiry and no revocation. A uniqueness violation in the
// store is treated as transient: the issuer retries with a freshly
// generated token instead of overwriting.
func IssueRefreshToken(ctx context.Context, store storage.TokenStorage, userID uuid.UUID) (*models.RefreshToken, error) {
	var lastErr error

	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		value, err := NewRefreshToken()
		if err != nil {
			return nil, err
		}

		now := time.Now()
		entry := &models.RefreshToken{
			Token:     value,
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
			ExpiresAt: now.Add(RefreshTokenTTL),
		}

		err = store.SaveRefreshToken(ctx, entry)
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, storage.ErrTokenAlreadyExists) {
			return nil, fmt.Errorf("failed to save refresh token: %w", err)
		}
		lastErr = err
	}

	return nil, fmt.Errorf("failed to save refresh token: %w", lastErr)
}
