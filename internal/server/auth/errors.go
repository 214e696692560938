package auth

import "errors"

// Errors returned by the auth subsystem. Handlers map these to HTTP status
// codes; nothing here should ever crash the process.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInvalidToken indicates a malformed, unsigned, wrong-issuer or
	// expired access token
	ErrInvalidToken = errors.New("invalid access token")

	// ErrUnauthorized indicates a refresh token that is absent, expired
	// or revoked
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMalformedHeader indicates a missing or misshaped Authorization header
	ErrMalformedHeader = errors.New("malformed authorization header")
)
