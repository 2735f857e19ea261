package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/redmonkez12/ledger-api/internal/httputil"
	"github.com/redmonkez12/ledger-api/internal/logging"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	UserIDContextKey    ContextKey = "user_id"
	UserEmailContextKey ContextKey = "user_email"
)

// Middleware handles authentication for protected routes
type Middleware struct {
	tokenService TokenService
}

func NewMiddleware(tokenService TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// RequireAuth is a middleware that validates the bearer token in the
// Authorization header and stores its claims in the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			httputil.RespondErrorWithCode(w, "invalid authorization header format", httputil.CodeInvalidAuthHeader, http.StatusUnauthorized)
			return
		}

		claims, err := m.tokenService.VerifyToken(parts[1])
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				httputil.RespondErrorWithCode(w, "token has expired", httputil.CodeTokenExpired, http.StatusUnauthorized)
				return
			}
			httputil.RespondErrorWithCode(w, "invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, claims.UserID)
		ctx = context.WithValue(ctx, UserEmailContextKey, claims.Email)

		logger := logging.GetLoggerFromContext(ctx).WithFields(map[string]any{"user_id": claims.UserID})
		ctx = logging.WithLogger(ctx, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(int64)
	return userID, ok
}

// GetUserEmailFromContext extracts the user email from the request context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailContextKey).(string)
	return email, ok
}
