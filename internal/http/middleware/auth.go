package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AlexanderWinters/the-score-card/internal/app/auth"
	"github.com/AlexanderWinters/the-score-card/internal/domain/users"
	"github.com/AlexanderWinters/the-score-card/internal/http/requestutil"
	"github.com/AlexanderWinters/the-score-card/internal/logging"
)

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (users.User, error)
}

type userKey struct{}

// WithUser stores the authenticated user on ctx.
func WithUser(ctx context.Context, user users.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the user stored by RequireUser.
func UserFromContext(ctx context.Context) (users.User, bool) {
	if ctx == nil {
		return users.User{}, false
	}
	user, ok := ctx.Value(userKey{}).(users.User)
	return user, ok
}

// RequireUser rejects requests without a valid bearer token with 401.
func RequireUser(authn Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := requestutil.BearerToken(r)
			if !ok {
				unauthorized(w, r, "Not authenticated")
				return
			}
			user, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrExpiredToken) {
					unauthorized(w, r, "Could not validate credentials")
					return
				}
				logging.Error(logging.FromContext(r.Context(), logger), "authenticate request failed", err)
				writeError(w, r, http.StatusInternalServerError, "internal error")
				return
			}
			ctx := WithUser(r.Context(), user)
			if l := logging.FromContext(ctx, nil); l != nil {
				ctx = logging.WithLogger(ctx, l.With(slog.Int64(logging.FieldUserID, user.ID)))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, r, http.StatusUnauthorized, message)
}
