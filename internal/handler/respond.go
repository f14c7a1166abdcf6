package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"renolab/internal/domain"
)

const publicInvalidMessage = "Link Expired or Revoked"

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondManagementError maps service errors on the authenticated surface.
// These callers are already identified, so errors can be specific.
func respondManagementError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": validation.Message,
			"field": validation.Field,
		})
	case errors.Is(err, domain.ErrPermissionDenied):
		respondJSON(w, http.StatusForbidden, map[string]string{
			"error": "only the project owner can manage share links",
		})
	default:
		// Transient storage failure: surfaced inline, retried by the user,
		// never automatically.
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "something went wrong, please try again",
		})
	}
}

// respondPublicInvalid is the single indistinguishable outcome for every
// public-path failure. No payload fields, no reason, no variation.
func respondPublicInvalid(w http.ResponseWriter) {
	respondJSON(w, http.StatusNotFound, map[string]string{
		"error": publicInvalidMessage,
	})
}
