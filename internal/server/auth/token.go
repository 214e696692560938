package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is the fixed iss claim of every access token this service signs.
const Issuer = "Chirpy"

// MinAccessTokenTTL is the floor for access token lifetime. Access tokens
// are stateless and cannot be revoked before natural expiry, so the TTL is
// kept short to bound the exposure window.
const MinAccessTokenTTL = time.Hour

// TokenService encodes and decodes signed access tokens. The signing secret
// is loaded once at startup and never mutated, so a single instance is safe
// for concurrent use by all request handlers.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service signing with the given secret
func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret}
}

// Encode creates a signed access token for the user, valid for ttl
func (s *TokenService) Encode(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode validates a signed access token and returns its claims. It fails
// with ErrInvalidToken when the signature doesn't verify, a required claim
// (iss, sub, iat, exp) is missing, the issuer mismatches, or the token has
// expired. Decoding never consults storage.
func (s *TokenService) Decode(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	// iss and exp presence are enforced by the parser options above;
	// iat and sub have to be checked by hand.
	if claims.IssuedAt == nil || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// DecodeUserID validates an access token and parses its subject as a user
// ID. A well-signed token whose subject is not a valid UUID is rejected.
func (s *TokenService) DecodeUserID(tokenString string) (uuid.UUID, error) {
	claims, err := s.Decode(tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject: %v", ErrInvalidToken, err)
	}
	return userID, nil
}
