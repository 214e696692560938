package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/chirpy/internal/server/auth"
	"github.com/iudanet/chirpy/internal/server/storage"
	"github.com/iudanet/chirpy/pkg/api"
)

// loginFailedMessage is deliberately the same for unknown emails and wrong
// passwords so responses can't be used to enumerate accounts.
const loginFailedMessage = "Incorrect email or password"

// AuthHandler serves the session lifecycle endpoints
type AuthHandler struct {
	logger     *slog.Logger
	sessions   *auth.SessionService
	defaultTTL time.Duration
}

// NewAuthHandler creates a new handler over the session service.
// defaultTTL is the access token lifetime used when the login request
// doesn't ask for one.
func NewAuthHandler(logger *slog.Logger, sessions *auth.SessionService, defaultTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		logger:     logger,
		sessions:   sessions,
		defaultTTL: defaultTTL,
	}
}

// Login handles POST /api/login.
// Exchanges email and password for an access token plus refresh token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		respondError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	ttl := h.defaultTTL
	if req.ExpiresInSeconds > 0 {
		ttl = time.Duration(req.ExpiresInSeconds) * time.Second
	}

	session, err := h.sessions.Login(ctx, req.Email, req.Password, ttl)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.WarnContext(ctx, "login failed")
			respondError(h.logger, w, http.StatusUnauthorized, loginFailedMessage)
			return
		}
		h.logger.ErrorContext(ctx, "login failed", slog.Any("error", err))
		respondError(h.logger, w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", session.User.ID.String()))

	respondJSON(h.logger, w, http.StatusOK, api.LoginResponse{
		User: api.User{
			ID:          session.User.ID,
			CreatedAt:   session.User.CreatedAt,
			UpdatedAt:   session.User.UpdatedAt,
			Email:       session.User.Email,
			IsChirpyRed: session.User.IsChirpyRed,
		},
		Token:        session.AccessToken,
		RefreshToken: session.RefreshToken.Token,
	})
}

// Refresh handles POST /api/refresh.
// Exchanges a still-active refresh token for a new access token. The
// refresh token is presented as a bearer credential and is not rotated.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := auth.GetBearerToken(r.Header)
	if err != nil {
		respondError(h.logger, w, http.StatusUnauthorized, "missing or malformed Authorization header")
		return
	}

	access, err := h.sessions.Refresh(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			h.logger.WarnContext(ctx, "refresh rejected")
			respondError(h.logger, w, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		h.logger.ErrorContext(ctx, "refresh failed", slog.Any("error", err))
		respondError(h.logger, w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, api.RefreshResponse{Token: access})
}

// Revoke handles POST /api/revoke.
// Revokes the presented refresh token. Responds 204 on success and 404
// when no such token exists.
func (h *AuthHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := auth.GetBearerToken(r.Header)
	if err != nil {
		respondError(h.logger, w, http.StatusUnauthorized, "missing or malformed Authorization header")
		return
	}

	if err := h.sessions.Revoke(ctx, token); err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			respondError(h.logger, w, http.StatusNotFound, "refresh token not found")
			return
		}
		h.logger.ErrorContext(ctx, "revoke failed", slog.Any("error", err))
		respondError(h.logger, w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
