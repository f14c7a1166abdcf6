package handler

import (
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"renolab/internal/domain"
	"renolab/internal/service"
)

// PublicShareHandler serves the unauthenticated share surface: the JSON
// resolution endpoint and a minimal HTML shell. The tool-specific rendering
// lives in the frontend; the shell only has to exist and to show the generic
// invalid page when the link is dead.
type PublicShareHandler struct {
	publicView *service.PublicViewService
}

func NewPublicShareHandler(publicView *service.PublicViewService) *PublicShareHandler {
	return &PublicShareHandler{publicView: publicView}
}

// Resolve is the anonymous JSON endpoint. Anything short of a fully valid
// token produces one identical 404 body with no payload fields.
func (h *PublicShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	toolKey := domain.ToolKey(chi.URLParam(r, "toolKey"))
	secret := chi.URLParam(r, "token")

	view, err := h.publicView.Validate(r.Context(), toolKey, secret)
	if err != nil {
		// Storage failures collapse into the same generic outcome as dead
		// tokens: the public path never explains itself.
		respondPublicInvalid(w)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// Page renders the public share page shell, or the invalid page.
func (h *PublicShareHandler) Page(w http.ResponseWriter, r *http.Request) {
	toolKey := domain.ToolKey(chi.URLParam(r, "toolKey"))
	secret := chi.URLParam(r, "token")

	view, err := h.publicView.Validate(r.Context(), toolKey, secret)
	if err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		if err := invalidPageTemplate.Execute(w, nil); err != nil {
			log.Printf("[SharePage] Failed to render invalid page: %v", err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := sharePageTemplate.Execute(w, view); err != nil {
		log.Printf("[SharePage] Failed to render share page: %v", err)
	}
}

var sharePageTemplate = template.Must(template.New("share").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.ProjectName}}</title></head>
<body>
<h1>{{.ProjectName}}</h1>
{{range .Payload.Groups}}
<section>
<h2>{{.Name}}</h2>
<ul>
{{range .Items}}
<li>
<strong>{{.Title}}</strong>{{if .Status}} — {{.Status}}{{end}}
{{if .Notes}}<p>{{.Notes}}</p>{{end}}
{{range .Photos}}<img src="{{.URL}}" alt="{{.Caption}}" loading="lazy">{{end}}
{{range .Comments}}<blockquote>{{.Body}}<cite>{{.AuthorName}}</cite></blockquote>{{end}}
</li>
{{end}}
</ul>
</section>
{{end}}
</body>
</html>
`))

var invalidPageTemplate = template.Must(template.New("invalid").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Link Expired or Revoked</title></head>
<body>
<h1>Link Expired or Revoked</h1>
<p>This share link is no longer available. Ask the project owner for a new one.</p>
</body>
</html>
`))
