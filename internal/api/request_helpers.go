package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/coursehub-api/internal/api/shared"
	"github.com/phrazzld/coursehub-api/internal/domain"
	"github.com/phrazzld/coursehub-api/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// getPathID extracts and parses an object ID path parameter.
func getPathID(r *http.Request, paramName string) (primitive.ObjectID, error) {
	return domain.ParseID(paramName, chi.URLParam(r, paramName))
}

// handlePathID is getPathID that writes the 400 response itself on failure.
func handlePathID(w http.ResponseWriter, r *http.Request, paramName string) (primitive.ObjectID, bool) {
	id, err := getPathID(r, paramName)
	if err != nil {
		logger.FromContext(r.Context()).Debug("invalid path parameter",
			"param_name", paramName,
			"value", chi.URLParam(r, paramName))
		HandleAPIError(w, r, err, "")
		return primitive.NilObjectID, false
	}
	return id, true
}

// requirePrincipal returns the authenticated caller, writing a 401 when the
// request carries none.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (shared.Principal, bool) {
	p, ok := shared.PrincipalFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Warn("principal not found in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return shared.Principal{}, false
	}
	return p, true
}

// respondDecodeError writes the 400 for a body DecodeJSON could not read.
func respondDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, shared.ErrEmptyBody) {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
}
