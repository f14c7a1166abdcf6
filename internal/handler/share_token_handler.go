package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"renolab/internal/auth"
	"renolab/internal/domain"
	"renolab/internal/service"
)

type ShareTokenHandler struct {
	shareTokens *service.ShareTokenService
}

func NewShareTokenHandler(shareTokens *service.ShareTokenService) *ShareTokenHandler {
	return &ShareTokenHandler{shareTokens: shareTokens}
}

type scopeRequest struct {
	Mode string   `json:"mode"`
	IDs  []string `json:"ids"`
}

type createShareTokenRequest struct {
	IncludeNotes    bool         `json:"includeNotes"`
	IncludeComments bool         `json:"includeComments"`
	IncludePhotos   bool         `json:"includePhotos"`
	Scope           scopeRequest `json:"scope"`
}

type revokeShareTokenRequest struct {
	TokenID string `json:"tokenId"`
}

func (h *ShareTokenHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	log.Printf("[CreateToken] Processing new share token request")

	userID, err := auth.VerifyToken(r)
	if err != nil {
		log.Printf("[CreateToken] Authentication failed: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	toolKey := domain.ToolKey(chi.URLParam(r, "toolKey"))
	projectID, err := uuid.Parse(r.URL.Query().Get("projectId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "projectId must be a valid uuid",
			"field": "projectId",
		})
		return
	}

	var req createShareTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[CreateToken] Failed to decode request body: %v", err)
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	entry, err := h.shareTokens.CreateToken(
		r.Context(),
		userID,
		toolKey,
		projectID,
		domain.ShareFlags{
			IncludeNotes:    req.IncludeNotes,
			IncludeComments: req.IncludeComments,
			IncludePhotos:   req.IncludePhotos,
		},
		domain.Scope{Mode: domain.ScopeMode(req.Scope.Mode), IDs: req.Scope.IDs},
	)
	if err != nil {
		log.Printf("[CreateToken] Failed to create share token: %v", err)
		respondManagementError(w, err)
		return
	}

	log.Printf("[CreateToken] Created share token %s for project %s", entry.ID, projectID)
	respondJSON(w, http.StatusCreated, entry)
}

func (h *ShareTokenHandler) ListTokens(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	toolKey := domain.ToolKey(chi.URLParam(r, "toolKey"))
	projectID, err := uuid.Parse(r.URL.Query().Get("projectId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "projectId must be a valid uuid",
			"field": "projectId",
		})
		return
	}

	entries, err := h.shareTokens.ListTokens(r.Context(), userID, toolKey, projectID)
	if err != nil {
		log.Printf("[ListTokens] Failed to list share tokens: %v", err)
		respondManagementError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"tokens": entries})
}

func (h *ShareTokenHandler) RevokeToken(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	toolKey := domain.ToolKey(chi.URLParam(r, "toolKey"))
	projectID, err := uuid.Parse(r.URL.Query().Get("projectId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "projectId must be a valid uuid",
			"field": "projectId",
		})
		return
	}

	var req revokeShareTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	tokenID, err := uuid.Parse(req.TokenID)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "tokenId must be a valid uuid",
			"field": "tokenId",
		})
		return
	}

	if err := h.shareTokens.RevokeToken(r.Context(), userID, toolKey, projectID, tokenID); err != nil {
		log.Printf("[RevokeToken] Failed to revoke share token %s: %v", tokenID, err)
		respondManagementError(w, err)
		return
	}

	log.Printf("[RevokeToken] Revoked share token %s", tokenID)
	w.WriteHeader(http.StatusNoContent)
}

// ClassifyToken tells the creation UI whether the candidate configuration is
// a risky share. Advisory: the create endpoint never re-checks this.
func (h *ShareTokenHandler) ClassifyToken(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	toolKey := domain.ToolKey(chi.URLParam(r, "toolKey"))
	projectID, err := uuid.Parse(r.URL.Query().Get("projectId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "projectId must be a valid uuid",
			"field": "projectId",
		})
		return
	}

	var req createShareTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	classification, err := h.shareTokens.Classify(
		r.Context(),
		userID,
		toolKey,
		projectID,
		domain.ShareFlags{
			IncludeNotes:    req.IncludeNotes,
			IncludeComments: req.IncludeComments,
			IncludePhotos:   req.IncludePhotos,
		},
		domain.Scope{Mode: domain.ScopeMode(req.Scope.Mode), IDs: req.Scope.IDs},
	)
	if err != nil {
		respondManagementError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, classification)
}
