package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/coursehub-api/internal/api/shared"
	"github.com/phrazzld/coursehub-api/internal/config"
	"github.com/phrazzld/coursehub-api/internal/domain"
	"github.com/phrazzld/coursehub-api/internal/platform/logger"
	"github.com/phrazzld/coursehub-api/internal/service/auth"
	"github.com/phrazzld/coursehub-api/internal/store"
)

// reservedRegistrationFields may not be supplied as profile fields.
var reservedRegistrationFields = map[string]struct{}{
	"_id":             {},
	"id":              {},
	"role":            {},
	"enrolledCourses": {},
	"hashedPassword":  {},
	"profile":         {},
	"createdAt":       {},
	"updatedAt":       {},
}

// AuthHandler handles registration and login.
type AuthHandler struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	authConfig config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	authConfig config.AuthConfig,
) *AuthHandler {
	return &AuthHandler{
		userStore:  userStore,
		jwtService: jwtService,
		hasher:     hasher,
		authConfig: authConfig,
	}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var body map[string]interface{}
	if err := shared.DecodeJSON(r, &body); err != nil {
		respondDecodeError(w, r, err)
		return
	}

	req, profile, err := splitRegistration(body)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	hashed, err := h.hasher.Hash(req.Password)
	if err != nil {
		// bcrypt rejects only over-long input here
		HandleAPIError(w, r, domain.NewValidationError("password", "is too long", nil), "")
		return
	}

	role := domain.RoleUser
	if h.authConfig.IsAdminUsername(strings.TrimSpace(req.Username)) {
		role = domain.RoleAdmin
	}

	user, err := domain.NewUser(req.Username, hashed, role, profile)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, user.Role)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	log.Info("user registered", "user_id", user.ID.Hex(), "role", user.Role)
	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{User: user, Token: token})
}

// Login handles POST /api/login. An unknown username and a wrong password
// produce the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondDecodeError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userStore.GetByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			HandleAPIError(w, r, auth.ErrInvalidCredentials, "")
			return
		}
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	if err := h.hasher.Compare(user.HashedPassword, req.Password); err != nil {
		HandleAPIError(w, r, auth.ErrInvalidCredentials, "")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, user.Role)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{User: user, Token: token})
}

// splitRegistration separates the credential fields of a registration body
// from the free-form profile fields.
func splitRegistration(body map[string]interface{}) (RegisterRequest, map[string]interface{}, error) {
	var req RegisterRequest
	var profile map[string]interface{}

	for key, value := range body {
		switch key {
		case "username", "password":
			s, ok := value.(string)
			if !ok {
				return req, nil, domain.NewValidationError(key, "must be a string", nil)
			}
			if key == "username" {
				req.Username = s
			} else {
				req.Password = s
			}
		default:
			if _, reserved := reservedRegistrationFields[key]; reserved {
				return req, nil, domain.NewValidationError(key, "cannot be set", nil)
			}
			if profile == nil {
				profile = make(map[string]interface{})
			}
			profile[key] = value
		}
	}

	return req, profile, nil
}
