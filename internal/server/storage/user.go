package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/iudanet/chirpy/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if the email is taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves user by email
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// UpdateCredentials replaces the user's email and password hash
	// Returns the updated user, or ErrUserNotFound
	UpdateCredentials(ctx context.Context, userID uuid.UUID, email, hashedPassword string) (*models.User, error)

	// UpgradeUser marks the user as Chirpy Red
	// Returns ErrUserNotFound if user doesn't exist
	UpgradeUser(ctx context.Context, userID uuid.UUID) error

	// DeleteAllUsers removes every user (and, via cascade, their refresh
	// tokens). Returns number of deleted users.
	DeleteAllUsers(ctx context.Context) (int64, error)
}
