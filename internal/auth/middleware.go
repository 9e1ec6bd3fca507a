package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/devlinkhq/devlink-api/internal/httputil"
)

// TokenHeader is the request header carrying the identity token.
const TokenHeader = "x-auth-token"

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const UserIDContextKey ContextKey = "user_id"

// Middleware gates privileged routes. It is a pure function of the
// header value, the signing secret and the current time; no shared
// mutable state, safe for concurrent requests.
type Middleware struct {
	tokenService TokenService
}

func NewMiddleware(tokenService TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// RequireAuth verifies the x-auth-token header and attaches the
// resolved identity id to the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(TokenHeader)
		if token == "" {
			httputil.RespondError(w, "no token, authorization denied", http.StatusUnauthorized)
			return
		}

		userID, err := m.tokenService.VerifyToken(token)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				httputil.RespondError(w, "token has expired, authorization denied", http.StatusUnauthorized)
				return
			}
			httputil.RespondError(w, "invalid token, authorization denied", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts the authenticated identity id from the
// request context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	return userID, ok
}
