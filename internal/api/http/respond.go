package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/logger"
	"greencommute-backend/internal/security"
	"greencommute-backend/internal/service"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeError maps expected business outcomes to client-facing status
// codes. Anything unmapped is an infrastructure fault: logged and hidden
// behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrNotApproved):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientCredits),
		errors.Is(err, domain.ErrDuplicateCommuteLog),
		errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, domain.ErrListingNotActive),
		errors.Is(err, domain.ErrOrganizationNotApproved),
		errors.Is(err, domain.ErrUnknownMethod),
		errors.Is(err, domain.ErrSelfTrade),
		errors.Is(err, domain.ErrMissingCommuteDistance):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, status, errorResponse{Message: "Internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Message: err.Error()})
}
