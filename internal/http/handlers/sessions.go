package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AlexanderWinters/the-score-card/internal/app/sessions"
	"github.com/AlexanderWinters/the-score-card/internal/session"
)

// SessionHandler exposes the signed-in user's in-progress round.
type SessionHandler struct {
	svc    *sessions.Service
	logger *slog.Logger
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(svc *sessions.Service, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{svc: svc, logger: logger}
}

// Get returns the session with its derived card when a tee is selected.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r, h.logger)
	if !ok {
		return
	}
	v, err := h.svc.Get(r.Context(), userID)
	h.respond(w, r, v, err)
}

// Update changes player, handicap, course, tee box or preferences.
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r, h.logger)
	if !ok {
		return
	}
	var u sessions.Update
	if err := decodeJSON(w, r, &u); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	v, err := h.svc.Update(r.Context(), userID, u)
	h.respond(w, r, v, err)
}

// SetHole records data for the hole in the URL.
func (h *SessionHandler) SetHole(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r, h.logger)
	if !ok {
		return
	}
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, session.ErrInvalidHole.Error(), h.logger)
		return
	}
	var u sessions.HoleUpdate
	if err := decodeJSON(w, r, &u); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	v, err := h.svc.SetHole(r.Context(), userID, number, u)
	h.respond(w, r, v, err)
}

// Reset clears hole data and keeps the setup.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r, h.logger)
	if !ok {
		return
	}
	v, err := h.svc.Reset(r.Context(), userID)
	h.respond(w, r, v, err)
}

type submitRequest struct {
	Date string `json:"date"`
}

// Submit saves the session round. The body is optional; an empty date means today.
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r, h.logger)
	if !ok {
		return
	}
	var req submitRequest
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}
	id, err := h.svc.Submit(r.Context(), userID, req.Date)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "Round saved successfully",
	}, h.logger)
}

func (h *SessionHandler) respond(w http.ResponseWriter, r *http.Request, v sessions.View, err error) {
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, v, h.logger)
}
