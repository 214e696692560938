package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/chirpy/pkg/api"
)

// respondJSON sends data as a JSON response with the given status code
func respondJSON(logger *slog.Logger, w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// respondError sends a JSON error body with the given status code
func respondError(logger *slog.Logger, w http.ResponseWriter, statusCode int, message string) {
	respondJSON(logger, w, statusCode, api.ErrorResponse{Error: message})
}
