package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"renolab/internal/auth"
	"renolab/internal/domain"
	"renolab/internal/service"
)

type ExportHandler struct {
	exportService *service.ExportService
	accessService *service.AccessService
}

func NewExportHandler(exportService *service.ExportService, accessService *service.AccessService) *ExportHandler {
	return &ExportHandler{exportService: exportService, accessService: accessService}
}

// Export feeds the print/PDF view. Open to any collaborator on the project,
// unlike share-token management which is owner-only.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
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

	export, err := h.exportService.Export(r.Context(), userID, toolKey, projectID)
	if err != nil {
		log.Printf("[Export] Failed to export %s for project %s: %v", toolKey, projectID, err)
		respondManagementError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, export)
}

// Seats reports derived collaborator seat usage, owner only.
func (h *ExportHandler) Seats(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "projectID must be a valid uuid",
			"field": "projectID",
		})
		return
	}

	usage, err := h.accessService.SeatUsage(r.Context(), userID, projectID)
	if err != nil {
		respondManagementError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, usage)
}
