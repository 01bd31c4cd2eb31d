package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	approunds "github.com/AlexanderWinters/the-score-card/internal/app/rounds"
	"github.com/AlexanderWinters/the-score-card/internal/domain"
	domainrounds "github.com/AlexanderWinters/the-score-card/internal/domain/rounds"
	"github.com/AlexanderWinters/the-score-card/internal/scoring"
	"github.com/AlexanderWinters/the-score-card/internal/session"
)

// RoundHandler saves rounds and serves history and derived scorecards.
type RoundHandler struct {
	svc    *approunds.Service
	logger *slog.Logger
}

// NewRoundHandler constructs a RoundHandler.
func NewRoundHandler(svc *approunds.Service, logger *slog.Logger) *RoundHandler {
	return &RoundHandler{svc: svc, logger: logger}
}

// Save stores a finished round for the authenticated user.
func (h *RoundHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r, h.logger)
	if !ok {
		return
	}
	var in domainrounds.RoundInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	id, err := h.svc.Save(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "Round saved successfully",
	}, h.logger)
}

// History lists the user's rounds, newest first.
func (h *RoundHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r, h.logger)
	if !ok {
		return
	}
	entries, err := h.svc.History(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if entries == nil {
		entries = []domainrounds.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries, h.logger)
}

// Chart renders the user's score history as a PNG.
func (h *RoundHandler) Chart(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r, h.logger)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.svc.Chart(r.Context(), userID, &buf); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// scorecardRequest is a round to score without storing it. Arrays shorter
// than a full round are padded with unentered holes.
type scorecardRequest struct {
	domainrounds.RoundInput
	Handicap int `json:"handicap"`
}

// Scorecard computes totals, per-hole breakdown, and current and next hole
// for the posted round.
func (h *RoundHandler) Scorecard(w http.ResponseWriter, r *http.Request) {
	var req scorecardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	in := req.RoundInput
	if n := len(in.Scores); n < scoring.Holes {
		in.Scores = append(in.Scores, make([]int, scoring.Holes-n)...)
	}
	if err := in.Validate(); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if req.Handicap < 0 || req.Handicap > session.MaxHandicap {
		ve := &domain.ValidationError{}
		ve.Add("handicap", "must be between 0 and "+strconv.Itoa(session.MaxHandicap))
		writeServiceError(w, r, ve, h.logger)
		return
	}

	state := in.State()
	state.Handicap = req.Handicap
	card, err := h.svc.Card(r.Context(), state)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, card, h.logger)
}
