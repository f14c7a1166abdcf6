package preview

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"renolab/internal/domain"
	"renolab/internal/service"
)

type Handler struct {
	previewService *Service
	publicView     *service.PublicViewService
}

func NewHandler(previewService *Service, publicView *service.PublicViewService) *Handler {
	return &Handler{previewService: previewService, publicView: publicView}
}

// GetThumb serves a resized photo through a share link. The token is
// re-validated on every fetch, so revoking a link cuts thumbnails off too.
// Every failure is the same generic not-found as the rest of the public path.
func (h *Handler) GetThumb(w http.ResponseWriter, r *http.Request) {
	toolKey := domain.ToolKey(chi.URLParam(r, "toolKey"))
	secret := chi.URLParam(r, "token")

	photoID, err := uuid.Parse(chi.URLParam(r, "photoID"))
	if err != nil {
		http.Error(w, "Link Expired or Revoked", http.StatusNotFound)
		return
	}

	photo, err := h.publicView.ValidatePhoto(r.Context(), toolKey, secret, photoID)
	if err != nil {
		http.Error(w, "Link Expired or Revoked", http.StatusNotFound)
		return
	}

	thumb, err := h.previewService.GetOrGenerateThumb(r.Context(), photo)
	if err != nil {
		log.Printf("[GetThumb] Failed to get thumbnail for photo %s: %v", photoID, err)
		http.Error(w, "Failed to get thumbnail", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(thumb)))
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.Write(thumb)
}
