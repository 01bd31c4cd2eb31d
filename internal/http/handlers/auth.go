package handlers

import (
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/AlexanderWinters/the-score-card/internal/app/auth"
	"github.com/AlexanderWinters/the-score-card/internal/domain"
	"github.com/AlexanderWinters/the-score-card/internal/domain/users"
	"github.com/AlexanderWinters/the-score-card/internal/http/middleware"
)

// AuthHandler registers users and issues bearer tokens.
type AuthHandler struct {
	svc    *auth.Service
	logger *slog.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Register creates an account from a JSON {email, password} body and returns a token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var creds users.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	tok, err := h.svc.Register(r.Context(), creds)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, tok, h.logger)
}

// Token exchanges credentials for a bearer token. It takes the OAuth2
// password form (username, password) and also accepts a JSON body.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	creds, err := readCredentials(w, r)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	tok, err := h.svc.Login(r.Context(), creds)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, tok, h.logger)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "Not authenticated", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, user, h.logger)
}

func readCredentials(w http.ResponseWriter, r *http.Request) (users.Credentials, error) {
	var creds users.Credentials
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := decodeJSON(w, r, &creds); err != nil {
			ve := &domain.ValidationError{}
			ve.Add("body", err.Error())
			return creds, ve
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		if err := r.ParseForm(); err != nil {
			ve := &domain.ValidationError{}
			ve.Add("body", "invalid form body")
			return creds, ve
		}
		creds.Email = r.PostForm.Get("username")
		creds.Password = r.PostForm.Get("password")
	}

	ve := &domain.ValidationError{}
	if strings.TrimSpace(creds.Email) == "" {
		ve.Add("username", "field required")
	}
	if creds.Password == "" {
		ve.Add("password", "field required")
	}
	return creds, ve.Err()
}
