package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/pmorales/tour-builder/backend/internal/identity"
)

// ctxKey is unexported so no other package can forge an identity in context.
type ctxKey int

const userIDKey ctxKey = 0

// NewAuthenticator returns a middleware that validates the Bearer token on
// each request and stores the caller's user ID in the request context.
// Requests with a missing, malformed, tampered, or expired token are
// rejected with 401 before any handler or store access runs.
func NewAuthenticator(tokens identity.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := identity.BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeAuthError(w, "missing bearer token")
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				if errors.Is(err, identity.ErrExpiredToken) {
					writeAuthError(w, "token expired")
					return
				}
				writeAuthError(w, "invalid token")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				writeAuthError(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a context carrying the caller's user ID.
// Production code goes through NewAuthenticator; handler tests use this
// to stub an authenticated caller.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext returns the authenticated caller's user ID.
// The boolean is false on routes that were not wrapped by NewAuthenticator.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// writeAuthError emits the same error envelope the handler package uses,
// with the auth_invalid code reserved for this middleware.
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "auth_invalid", "message": message},
	})
}
