package api

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest is the body of POST /api/users
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest is the body of PUT /api/users
type UpdateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/login. ExpiresInSeconds is
// optional; values below one hour are raised to the one-hour floor.
type LoginRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	ExpiresInSeconds int64  `json:"expires_in_seconds,omitempty"`
}

// User is the public shape of a user. It never carries the password hash.
type User struct {
	ID          uuid.UUID `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Email       string    `json:"email"`
	IsChirpyRed bool      `json:"is_chirpy_red"`
}

// LoginResponse is the body of a successful login
type LoginResponse struct {
	User
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse carries the freshly minted access token
type RefreshResponse struct {
	Token string `json:"token"`
}

// WebhookEvent is the body the billing provider posts to
// POST /api/polka/webhooks
type WebhookEvent struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

// WebhookData identifies the user a webhook event refers to
type WebhookData struct {
	UserID uuid.UUID `json:"user_id"`
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}
