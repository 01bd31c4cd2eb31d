package handlers

import (
	"log/slog"
	"net/http"

	appcourses "github.com/AlexanderWinters/the-score-card/internal/app/courses"
	"github.com/AlexanderWinters/the-score-card/internal/http/requestutil"
	"github.com/AlexanderWinters/the-score-card/internal/logging"
)

// BootstrapHandler prepares an empty deployment.
type BootstrapHandler struct {
	svc    *appcourses.Service
	logger *slog.Logger
}

// NewBootstrapHandler constructs a BootstrapHandler.
func NewBootstrapHandler(svc *appcourses.Service, logger *slog.Logger) *BootstrapHandler {
	return &BootstrapHandler{svc: svc, logger: logger}
}

// Seed inserts the sample courses that are not stored yet. Calling it again is harmless.
func (h *BootstrapHandler) Seed(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	ids, err := h.svc.Seed(r.Context())
	if err != nil {
		logging.Warn(logger, "seed failed",
			slog.String("client_ip", requestutil.ClientIP(r)),
			slog.Any("err", err),
		)
		writeServiceError(w, r, err, h.logger)
		return
	}

	message := "Database seeded successfully"
	if len(ids) == 0 {
		message = "Sample courses already present"
	}
	logging.Info(logger, "seed complete", logging.FieldCount, len(ids))
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    message,
		"course_ids": ids,
	}, h.logger)
}

// CheckDatabase reports whether the catalog has any courses.
func (h *BootstrapHandler) CheckDatabase(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Status(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, status, h.logger)
}
