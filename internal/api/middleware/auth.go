// Package middleware provides HTTP middleware for the API layer.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskflow/taskflow-api/internal/api/shared"
	"github.com/taskflow/taskflow-api/internal/domain"
	"github.com/taskflow/taskflow-api/internal/platform/logger"
	"github.com/taskflow/taskflow-api/internal/service/auth"
	"github.com/taskflow/taskflow-api/internal/store"
)

// unauthorizedMessage is the single body returned for every authentication
// failure. Missing, malformed, expired, and unknown-subject tokens are
// indistinguishable to the caller so the responses cannot be used to probe
// which accounts exist.
const unauthorizedMessage = "Not authenticated"

// AuthMiddleware validates bearer tokens and resolves them to active users.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(jwtService auth.JWTService, userStore store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
	}
}

// Authenticate verifies the Authorization header, validates the token, and
// loads the active user named by the token subject into the request context
// under shared.UserContextKey. Any failure short-circuits with 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), nil)

		tokenString, err := extractBearerToken(r)
		if err != nil {
			log.Debug("missing or malformed authorization header", "error", err)
			shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), tokenString)
		if err != nil {
			// Expired and invalid tokens get the same response on purpose.
			log.Debug("token validation failed",
				slog.Bool("expired", errors.Is(err, auth.ErrExpiredToken)))
			shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
			return
		}

		user, err := m.userStore.GetByEmail(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				log.Debug("token subject does not resolve to a user")
				shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
				return
			}
			log.Error("failed to look up token subject", "error", err)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Internal server error")
			return
		}

		if !user.IsActive {
			log.Debug("token subject is deactivated", "user_id", user.ID)
			shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractBearerToken pulls the token out of an "Authorization: Bearer x"
// header. The scheme comparison is case-insensitive per RFC 7235.
func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", auth.ErrInvalidToken
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", auth.ErrMissingToken
	}
	return token, nil
}

// UserFromContext retrieves the authenticated user placed in the context by
// Authenticate. The second return value reports whether a user was present.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(shared.UserContextKey).(*domain.User)
	return user, ok
}
