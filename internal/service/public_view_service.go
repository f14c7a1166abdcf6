package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"renolab/internal/domain"
)

// ToolData is the read-only boundary to the per-tool data services.
// Implemented by repository.ToolRepository.
type ToolData interface {
	GetGroups(ctx context.Context, toolKey domain.ToolKey, projectID uuid.UUID) ([]domain.ToolGroup, error)
	CountGroups(ctx context.Context, toolKey domain.ToolKey, projectID uuid.UUID) (int, error)
	GetPayload(ctx context.Context, toolKey domain.ToolKey, projectID uuid.UUID) (*domain.ToolPayload, error)
	GetPhoto(ctx context.Context, photoID uuid.UUID) (*domain.ItemPhoto, *domain.ToolItem, error)
}

// PhotoURLSigner mints URLs anonymous viewers can fetch photos from.
// Implemented by the S3 client's presigner.
type PhotoURLSigner interface {
	SignedURL(ctx context.Context, objectKey string) (string, error)
}

// PublicViewService resolves opaque token strings into composed public views.
// Safe to call with arbitrary input: every failure mode collapses into the
// one ErrInvalidToken, and nothing here mutates state.
type PublicViewService struct {
	tokens   ShareTokenStore
	projects ProjectStore
	tools    ToolData
	photos   PhotoURLSigner
	now      func() time.Time
}

func NewPublicViewService(
	tokens ShareTokenStore,
	projects ProjectStore,
	tools ToolData,
	photos PhotoURLSigner,
) *PublicViewService {
	return &PublicViewService{
		tokens:   tokens,
		projects: projects,
		tools:    tools,
		photos:   photos,
		now:      time.Now,
	}
}

// Validate is the whole public resolution path: exact-match lookup, lifecycle
// check against a single clock, live payload load, scope filter, sanitize.
// Not-found, revoked and expired are indistinguishable to the caller.
func (s *PublicViewService) Validate(ctx context.Context, toolKey domain.ToolKey, secret string) (*domain.PublicView, error) {
	token, err := s.resolveToken(ctx, toolKey, secret)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, token.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil {
		return nil, domain.ErrInvalidToken
	}

	payload, err := s.tools.GetPayload(ctx, toolKey, token.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tool payload: %w", err)
	}

	filtered := ResolveScope(token.Scope(), *payload)
	public := SanitizePayload(filtered, token.Flags(), s.urlResolver(ctx))

	return &domain.PublicView{
		ProjectName:     project.Name,
		Payload:         public,
		IncludeNotes:    token.IncludeNotes,
		IncludeComments: token.IncludeComments,
		IncludePhotos:   token.IncludePhotos,
		Scope:           token.Scope(),
	}, nil
}

// ValidatePhoto authorizes a single photo fetch through a share link. The
// token must currently validate, must include photos, and the photo's item
// must sit inside the shared project and scope. Any miss is the same generic
// invalid outcome.
func (s *PublicViewService) ValidatePhoto(ctx context.Context, toolKey domain.ToolKey, secret string, photoID uuid.UUID) (*domain.ItemPhoto, error) {
	token, err := s.resolveToken(ctx, toolKey, secret)
	if err != nil {
		return nil, err
	}
	if !token.IncludePhotos {
		return nil, domain.ErrInvalidToken
	}

	photo, item, err := s.tools.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if item.ProjectID != token.ProjectID || item.ToolKey != toolKey {
		return nil, domain.ErrInvalidToken
	}

	if token.ScopeMode == domain.ScopeModeSelected {
		inScope := false
		for _, id := range token.ScopeIDs {
			if id == item.GroupID.String() {
				inScope = true
				break
			}
		}
		if !inScope {
			return nil, domain.ErrInvalidToken
		}
	}

	return photo, nil
}

func (s *PublicViewService) resolveToken(ctx context.Context, toolKey domain.ToolKey, secret string) (*domain.ShareToken, error) {
	if _, ok := domain.DescribeTool(toolKey); !ok {
		return nil, domain.ErrInvalidToken
	}
	if secret == "" {
		return nil, domain.ErrInvalidToken
	}

	token, err := s.tokens.GetBySecret(ctx, secret)
	if err != nil {
		return nil, fmt.Errorf("failed to look up share token: %w", err)
	}
	if token == nil || token.ToolKey != toolKey || !token.Usable(s.now()) {
		return nil, domain.ErrInvalidToken
	}

	return token, nil
}

func (s *PublicViewService) urlResolver(ctx context.Context) PhotoURLResolver {
	return func(objectKey string) string {
		url, err := s.photos.SignedURL(ctx, objectKey)
		if err != nil {
			log.Printf("[PublicView] Failed to sign photo URL for %s: %v", objectKey, err)
			return ""
		}
		return url
	}
}
