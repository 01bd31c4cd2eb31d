package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/AlexanderWinters/the-score-card/internal/logging"
)

// PingFunc checks a backing dependency.
type PingFunc func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	ping   PingFunc
	logger *slog.Logger
}

// NewHealthHandler constructs a HealthHandler. A nil ping makes Ready always succeed.
func NewHealthHandler(ping PingFunc, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{ping: ping, logger: logger}
}

// Health reports the process is up.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the database answers.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			logging.Warn(loggerFromContext(r, h.logger), "readiness check failed", "error", err)
			writeError(w, r, http.StatusServiceUnavailable, "database unavailable", h.logger)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
}
