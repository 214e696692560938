package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/chirpy/internal/server/auth"
	"github.com/iudanet/chirpy/internal/server/storage"
	"github.com/iudanet/chirpy/pkg/api"
)

// userUpgradedEvent is the only webhook event this server acts on
const userUpgradedEvent = "user.upgraded"

// WebhooksHandler serves the billing provider's upgrade webhook. The
// caller authenticates with a static shared key in an
// "Authorization: ApiKey <key>" header.
type WebhooksHandler struct {
	logger   *slog.Logger
	users    storage.UserStorage
	polkaKey string
}

// NewWebhooksHandler creates a new webhook handler
func NewWebhooksHandler(logger *slog.Logger, users storage.UserStorage, polkaKey string) *WebhooksHandler {
	return &WebhooksHandler{
		logger:   logger,
		users:    users,
		polkaKey: polkaKey,
	}
}

// Handle handles POST /api/polka/webhooks
func (h *WebhooksHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key, err := auth.GetAPIKey(r.Header)
	if err != nil || !auth.APIKeysEqual(key, h.polkaKey) {
		h.logger.WarnContext(ctx, "webhook rejected: bad api key")
		respondError(h.logger, w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var event api.WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode webhook event", slog.Any("error", err))
		respondError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Events other than the upgrade are acknowledged and ignored
	if event.Event != userUpgradedEvent {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.users.UpgradeUser(ctx, event.Data.UserID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			respondError(h.logger, w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to upgrade user", slog.Any("error", err))
		respondError(h.logger, w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "user upgraded",
		slog.String("user_id", event.Data.UserID.String()))

	w.WriteHeader(http.StatusNoContent)
}
