package middleware

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/chirpy/internal/server/auth"
	"github.com/iudanet/chirpy/internal/server/handlers"
)

// Auth creates middleware that requires a valid access token. It extracts
// the bearer token from the Authorization header, verifies the signature
// and claims through the token service (no store lookup), and puts the
// user ID on the request context.
func Auth(logger *slog.Logger, codec *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.GetBearerToken(r.Header)
			if err != nil {
				logger.Warn("missing or malformed Authorization header")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			userID, err := codec.DecodeUserID(token)
			if err != nil {
				logger.Warn("invalid access token", slog.Any("error", err))
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := handlers.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
