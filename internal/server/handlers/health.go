package handlers

import (
	"log/slog"
	"net/http"
)

// HealthHandler serves readiness checks
type HealthHandler struct {
	logger *slog.Logger
}

// NewHealthHandler creates a new handler for health checks
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// Health handles GET /api/healthz
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		h.logger.Error("failed to write health response", slog.Any("error", err))
	}
}
