package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/coursehub-api/internal/api/shared"
	"github.com/phrazzld/coursehub-api/internal/domain"
	"github.com/phrazzld/coursehub-api/internal/service/auth"
	"github.com/phrazzld/coursehub-api/internal/store"
)

// Client-facing messages.
const (
	msgInvalidCredentials = "Invalid login credentials"
	msgCourseNotFound     = "Course not found"
	msgUserNotFound       = "User not found"
	msgAlreadyEnrolled    = "Already enrolled in this course"
	msgUsernameTaken      = "Username already exists"
	msgInvalidRequest     = "Invalid request format"
	msgUnexpected         = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Authentication failures share the shape of validation failures.
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusBadRequest

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrAlreadyEnrolled),
		errors.Is(err, store.ErrUsernameExists),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrTimeout):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var validationErr *domain.ValidationError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return msgInvalidCredentials

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return "Admin access required"

	case errors.Is(err, store.ErrUserNotFound):
		return msgUserNotFound
	case errors.Is(err, store.ErrCourseNotFound):
		return msgCourseNotFound
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrAlreadyEnrolled):
		return msgAlreadyEnrolled
	case errors.Is(err, store.ErrUsernameExists):
		return msgUsernameTaken

	// Built by the domain layer from field names and fixed text, so safe to echo.
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.Is(err, store.ErrTimeout):
		return "Service temporarily unavailable"

	default:
		return msgUnexpected
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted detail. A non-empty userMessage overrides the derived message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), userMessage, err)
}

// SanitizeValidationError turns validator output into a short message such as
// "Invalid password: required field".
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	parts := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		parts = append(parts, fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag())))
	}
	return strings.Join(parts, "; ")
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
