package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/coursehub-api/internal/api/shared"
	"github.com/phrazzld/coursehub-api/internal/domain"
	"github.com/phrazzld/coursehub-api/internal/platform/logger"
	"github.com/phrazzld/coursehub-api/internal/service/auth"
	"github.com/phrazzld/coursehub-api/internal/store"
)

// AuthMiddleware gates routes on a valid bearer token and, for admin routes,
// on the caller's stored role.
type AuthMiddleware struct {
	jwtService auth.JWTService
	users      store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, users store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// Authenticate validates the bearer token and attaches the caller's
// shared.Principal to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			}
			return
		}

		ctx := shared.WithPrincipal(r.Context(), shared.Principal{UserID: claims.UserID, Role: claims.Role})
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With("user_id", claims.UserID.Hex()))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin admits only callers whose stored user record has the admin
// role. It must run after Authenticate. The role claim in the token is not
// trusted on its own, so a demoted user loses access immediately.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := shared.PrincipalFromContext(r.Context())
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		user, err := m.users.GetByID(r.Context(), principal.UserID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "User not found")
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authorization error", err)
			return
		}

		if !user.IsAdmin() {
			shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "Admin access required",
				domain.ErrForbidden, shared.WithElevatedLogLevel())
			return
		}

		next.ServeHTTP(w, r)
	})
}
