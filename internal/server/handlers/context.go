package handlers

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// userIDKey carries the authenticated user's ID through the request context
const userIDKey contextKey = "user_id"

// WithUserID returns a context carrying the authenticated user's ID
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user's ID set by the auth
// middleware
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}
