package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AlexanderWinters/the-score-card/internal/app/auth"
	appcourses "github.com/AlexanderWinters/the-score-card/internal/app/courses"
	"github.com/AlexanderWinters/the-score-card/internal/app/sessions"
	"github.com/AlexanderWinters/the-score-card/internal/domain"
	"github.com/AlexanderWinters/the-score-card/internal/http/middleware"
	"github.com/AlexanderWinters/the-score-card/internal/importer"
	"github.com/AlexanderWinters/the-score-card/internal/logging"
	"github.com/AlexanderWinters/the-score-card/internal/scoring"
	"github.com/AlexanderWinters/the-score-card/internal/session"
	"github.com/AlexanderWinters/the-score-card/internal/store"
)

const maxJSONBody = 1 << 20

// Client-facing messages for domain errors.
const (
	msgIncompleteRound    = "Round must have at least 9 completed holes"
	msgInvalidCredentials = "Incorrect email or password"
	msgEmailTaken         = "Email already registered"
	msgTeeBoxInUse        = "Tee box has saved rounds and cannot be removed"
	msgInternal           = "internal error"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorBody(r, message), logger)
}

func errorBody(r *http.Request, message string) map[string]any {
	body := map[string]any{"error": message}
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	if reqID != "" {
		body["requestId"] = reqID
	}
	return body
}

// writeServiceError maps service errors onto status codes. Unknown errors are
// logged and reported as 500 without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	logger = loggerFromContext(r, logger)

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		body := errorBody(r, "invalid input")
		body["fields"] = ve.Fields
		writeJSON(w, http.StatusBadRequest, body, logger)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found", logger)
	case errors.Is(err, scoring.ErrIncompleteRound):
		writeError(w, r, http.StatusBadRequest, msgIncompleteRound, logger)
	case errors.Is(err, store.ErrEmailTaken):
		writeError(w, r, http.StatusBadRequest, msgEmailTaken, logger)
	case errors.Is(err, auth.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, r, http.StatusUnauthorized, msgInvalidCredentials, logger)
	case errors.Is(err, store.ErrTeeBoxInUse):
		writeError(w, r, http.StatusConflict, msgTeeBoxInUse, logger)
	case errors.Is(err, session.ErrInvalidHole),
		errors.Is(err, session.ErrInvalidValue),
		errors.Is(err, sessions.ErrNoTeeBox),
		errors.Is(err, appcourses.ErrInvalidFile),
		errors.Is(err, importer.ErrUnsupportedFormat):
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
	default:
		logging.Error(logger, "request failed", err, logging.FieldPath, r.URL.Path)
		writeError(w, r, http.StatusInternalServerError, msgInternal, logger)
	}
}

// decodeJSON reads a size-limited JSON body into dest.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// currentUserID returns the authenticated user's id. Routes reaching handlers
// that need it are mounted behind RequireUser.
func currentUserID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "Not authenticated", logger)
		return 0, false
	}
	return user.ID, true
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

// NotFound answers unknown routes with the JSON error body.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", loggerFromContext(r, nil))
}

// MethodNotAllowed answers known routes hit with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", loggerFromContext(r, nil))
}
