package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/chirpy/internal/models"
	"github.com/iudanet/chirpy/internal/server/auth"
	"github.com/iudanet/chirpy/internal/server/storage"
	"github.com/iudanet/chirpy/internal/validation"
	"github.com/iudanet/chirpy/pkg/api"
)

// UsersHandler serves user registration and credential updates
type UsersHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
}

// NewUsersHandler creates a new handler over the user store
func NewUsersHandler(logger *slog.Logger, users storage.UserStorage) *UsersHandler {
	return &UsersHandler{
		logger: logger,
		users:  users,
	}
}

// Create handles POST /api/users.
// Registers a new account with a hashed password.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create user request", slog.Any("error", err))
		respondError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		respondError(h.logger, w, http.StatusInternalServerError, "internal server error")
		return
	}

	now := time.Now()
	user := &models.User{
		ID:             uuid.New(),
		CreatedAt:      now,
		UpdatedAt:      now,
		Email:          req.Email,
		HashedPassword: hashed,
	}

	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists")
			respondError(h.logger, w, http.StatusConflict, "email already taken")
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		respondError(h.logger, w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()))

	respondJSON(h.logger, w, http.StatusCreated, api.User{
		ID:          user.ID,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
		Email:       user.Email,
		IsChirpyRed: user.IsChirpyRed,
	})
}

// Update handles PUT /api/users.
// Replaces the authenticated user's email and password. Requires a valid
// access token; the auth middleware puts the user ID on the context.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		respondError(h.logger, w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req api.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update user request", slog.Any("error", err))
		respondError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		respondError(h.logger, w, http.StatusInternalServerError, "internal server error")
		return
	}

	user, err := h.users.UpdateCredentials(ctx, userID, req.Email, hashed)
	if err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			respondError(h.logger, w, http.StatusConflict, "email already taken")
			return
		}
		if errors.Is(err, storage.ErrUserNotFound) {
			respondError(h.logger, w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to update user", slog.Any("error", err))
		respondError(h.logger, w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "user credentials updated", slog.String("user_id", userID.String()))

	respondJSON(h.logger, w, http.StatusOK, api.User{
		ID:          user.ID,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
		Email:       user.Email,
		IsChirpyRed: user.IsChirpyRed,
	})
}
