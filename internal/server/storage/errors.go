package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that a user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrTokenAlreadyExists indicates a uniqueness violation on the token
	// value. Callers should treat it as transient and retry with a freshly
	// generated token.
	ErrTokenAlreadyExists = errors.New("refresh token already exists")
)
