package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/chirpy/internal/models"
	"github.com/iudanet/chirpy/internal/server/storage"
)

// SaveRefreshToken stores a new refresh token. The token value is the
// primary key; inserting an existing value fails with
// ErrTokenAlreadyExists instead of overwriting.
func (s *Storage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (token, created_at, updated_at, user_id, expires_at, revoked_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var revokedAt interface{}
	if token.RevokedAt != nil {
		revokedAt = *token.RevokedAt
	}

	_, err := s.db.ExecContext(ctx, query,
		token.Token,
		token.CreatedAt,
		token.UpdatedAt,
		token.UserID.String(),
		token.ExpiresAt,
		revokedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: refresh_tokens.token") {
			return storage.ErrTokenAlreadyExists
		}
		return fmt.Errorf("failed to save refresh token: %w", err)
	}

	return nil
}

// GetRefreshToken retrieves refresh token by token value
func (s *Storage) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := `
		SELECT token, created_at, updated_at, user_id, expires_at, revoked_at
		FROM refresh_tokens
		WHERE token = ?
	`

	entry := &models.RefreshToken{}
	var userID string
	var revokedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, token).Scan(
		&entry.Token,
		&entry.CreatedAt,
		&entry.UpdatedAt,
		&userID,
		&entry.ExpiresAt,
		&revokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	entry.UserID, err = uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user id: %w", err)
	}
	if revokedAt.Valid {
		entry.RevokedAt = &revokedAt.Time
	}

	return entry, nil
}

// RevokeRefreshToken stamps revoked_at and updated_at. The guard on
// revoked_at IS NULL makes repeated revocation a no-op that keeps the
// original timestamp. The single UPDATE is atomic, so a concurrent lookup
// sees either the pre- or post-revoke row.
func (s *Storage) RevokeRefreshToken(ctx context.Context, token string, when time.Time) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = ?, updated_at = ?
		WHERE token = ? AND revoked_at IS NULL
	`

	result, err := s.db.ExecContext(ctx, query, when, when, token)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	// Nothing updated: either the token is already revoked (fine) or it
	// doesn't exist at all.
	if _, err := s.GetRefreshToken(ctx, token); err != nil {
		return err
	}
	return nil
}
