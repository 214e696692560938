package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/chirpy/internal/config"
	"github.com/iudanet/chirpy/internal/server/storage"
)

// AdminHandler serves privileged development endpoints
type AdminHandler struct {
	logger   *slog.Logger
	users    storage.UserStorage
	platform config.Platform
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(logger *slog.Logger, users storage.UserStorage, platform config.Platform) *AdminHandler {
	return &AdminHandler{
		logger:   logger,
		users:    users,
		platform: platform,
	}
}

// Reset handles POST /admin/reset.
// Deletes every user (refresh tokens cascade). Only allowed on the dev
// platform; anywhere else it is forbidden outright.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.platform != config.PlatformDev {
		respondError(h.logger, w, http.StatusForbidden, "forbidden")
		return
	}

	deleted, err := h.users.DeleteAllUsers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to reset users", slog.Any("error", err))
		respondError(h.logger, w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "all users deleted", slog.Int64("count", deleted))
	w.WriteHeader(http.StatusOK)
}
