package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/creditdesk/credit-intake-be/internal/auth"
	"github.com/creditdesk/credit-intake-be/internal/http/respond"
	"github.com/creditdesk/credit-intake-be/internal/models"
	"github.com/creditdesk/credit-intake-be/internal/storage"
)

type contextKey string

const userKey contextKey = "current-user"

// RequireAuth resolves the bearer token on each request to a user record and
// injects it into the request context. Missing or malformed headers, invalid
// or expired tokens, and tokens naming a vanished user all yield the same
// 401 so callers cannot probe for the cause.
func RequireAuth(tokens *auth.TokenManager, users storage.UserStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			unauthorized(w)
			return
		}
		username, err := tokens.Validate(raw)
		if err != nil {
			unauthorized(w)
			return
		}
		user, err := users.FindByUsername(r.Context(), username)
		if err != nil {
			unauthorized(w)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFrom returns the authenticated user resolved by RequireAuth.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	respond.Error(w, http.StatusUnauthorized, respond.CodeInvalidCredentials, "could not validate credentials")
}
