package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const (
	bearerPrefix = "Bearer "
	apiKeyPrefix = "ApiKey "
)

// GetBearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It only parses; signature verification is the token service's
// job. The returned string is a view into the header value.
func GetBearerToken(headers http.Header) (string, error) {
	return stripPrefix(headers, bearerPrefix)
}

// GetAPIKey extracts the key from an "Authorization: ApiKey <key>" header,
// used by the upgrade webhook caller to authenticate itself.
func GetAPIKey(headers http.Header) (string, error) {
	return stripPrefix(headers, apiKeyPrefix)
}

// APIKeysEqual compares a presented API key against the configured one in
// constant time.
func APIKeysEqual(presented, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}

func stripPrefix(headers http.Header, prefix string) (string, error) {
	value := headers.Get("Authorization")
	if value == "" {
		return "", ErrMalformedHeader
	}

	token, ok := strings.CutPrefix(value, prefix)
	if !ok || token == "" {
		return "", ErrMalformedHeader
	}
	return token, nil
}
