package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nebulahq/auth-service/internal/infrastructure/observability"
)

type contextKey string

const userIDKey contextKey = "user_id"

// ContextWithUserID returns ctx carrying the authenticated user's ID.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user's ID set by Middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// Middleware guards protected routes with a bearer access token. Every
// failure mode collapses to a generic 401: which validation failed is
// never leaked to the client.
func Middleware(manager *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "authorization header missing", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			userID, ok := manager.AccessTokens().SubjectOf(parts[1])
			if !ok {
				observability.TokenValidations.WithLabelValues(TokenTypeAccess, "rejected").Inc()
				slog.Warn("access token rejected", "path", r.URL.Path)
				http.Error(w, "invalid or expired access token", http.StatusUnauthorized)
				return
			}
			observability.TokenValidations.WithLabelValues(TokenTypeAccess, "accepted").Inc()

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}
