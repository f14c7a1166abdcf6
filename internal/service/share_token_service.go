package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"renolab/internal/domain"
)

// ShareTokenStore is the token persistence surface. Implemented by
// repository.ShareTokenRepository.
type ShareTokenStore interface {
	Create(ctx context.Context, token *domain.ShareToken) error
	GetBySecret(ctx context.Context, secret string) (*domain.ShareToken, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ShareToken, error)
	ListByProject(ctx context.Context, toolKey domain.ToolKey, projectID uuid.UUID) ([]domain.ShareToken, error)
	Revoke(ctx context.Context, id uuid.UUID) error
}

type ShareTokenService struct {
	tokens  ShareTokenStore
	access  *AccessService
	tools   ToolData
	baseURL string
	now     func() time.Time
}

// ShareTokenEntry is a token row as the owner management UI sees it: the
// stored record plus its computed state and the public URL it grants.
type ShareTokenEntry struct {
	domain.ShareToken
	Status   domain.TokenStatus `json:"status"`
	ShareURL string             `json:"share_url"`
}

func NewShareTokenService(
	tokens ShareTokenStore,
	access *AccessService,
	tools ToolData,
	baseURL string,
) *ShareTokenService {
	return &ShareTokenService{
		tokens:  tokens,
		access:  access,
		tools:   tools,
		baseURL: baseURL,
		now:     time.Now,
	}
}

func generateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// CreateToken mints a fresh independent token. Every creation path goes
// through here, so the 14-day expiry is always set server-side; UI copy about
// the TTL is informational only.
func (s *ShareTokenService) CreateToken(
	ctx context.Context,
	userID string,
	toolKey domain.ToolKey,
	projectID uuid.UUID,
	flags domain.ShareFlags,
	scope domain.Scope,
) (*ShareTokenEntry, error) {
	if _, ok := domain.DescribeTool(toolKey); !ok {
		return nil, domain.NewValidationError("toolKey", fmt.Sprintf("unknown tool %q", toolKey))
	}
	if err := validateScope(scope); err != nil {
		return nil, err
	}
	if err := s.access.CanManageShares(ctx, userID, projectID); err != nil {
		return nil, err
	}

	secret, err := generateSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}

	now := s.now()
	token := &domain.ShareToken{
		ID:              uuid.New(),
		ToolKey:         toolKey,
		ProjectID:       projectID,
		Secret:          secret,
		ScopeMode:       scope.Mode,
		ScopeIDs:        scope.IDs,
		IncludeNotes:    flags.IncludeNotes,
		IncludeComments: flags.IncludeComments,
		IncludePhotos:   flags.IncludePhotos,
		CreatedAt:       now,
		ExpiresAt:       now.Add(domain.ShareTokenTTL),
	}
	if scope.Mode == domain.ScopeModeAll {
		token.ScopeIDs = nil
	}

	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to create share token: %w", err)
	}

	return s.entry(token), nil
}

// ListTokens returns the full history for the owner management UI, terminal
// tokens included.
func (s *ShareTokenService) ListTokens(
	ctx context.Context,
	userID string,
	toolKey domain.ToolKey,
	projectID uuid.UUID,
) ([]ShareTokenEntry, error) {
	if _, ok := domain.DescribeTool(toolKey); !ok {
		return nil, domain.NewValidationError("toolKey", fmt.Sprintf("unknown tool %q", toolKey))
	}
	if err := s.access.CanManageShares(ctx, userID, projectID); err != nil {
		return nil, err
	}

	tokens, err := s.tokens.ListByProject(ctx, toolKey, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list share tokens: %w", err)
	}

	entries := make([]ShareTokenEntry, 0, len(tokens))
	for i := range tokens {
		entries = append(entries, *s.entry(&tokens[i]))
	}
	return entries, nil
}

// RevokeToken is idempotent: revoking an already-revoked or unknown token is
// a no-op. A token belonging to another project or tool is rejected as if the
// caller had no right to it.
func (s *ShareTokenService) RevokeToken(
	ctx context.Context,
	userID string,
	toolKey domain.ToolKey,
	projectID uuid.UUID,
	tokenID uuid.UUID,
) error {
	if err := s.access.CanManageShares(ctx, userID, projectID); err != nil {
		return err
	}

	token, err := s.tokens.GetByID(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("failed to load share token: %w", err)
	}
	if token == nil {
		return nil
	}
	if token.ProjectID != projectID || token.ToolKey != toolKey {
		return domain.ErrPermissionDenied
	}

	if err := s.tokens.Revoke(ctx, tokenID); err != nil {
		return fmt.Errorf("failed to revoke share token: %w", err)
	}
	return nil
}

// Classify tells the creation UI whether the candidate configuration needs
// the typed-confirmation ritual. Advisory only — CreateToken never rejects on
// risk grounds, the confirmation check is the UI's job.
func (s *ShareTokenService) Classify(
	ctx context.Context,
	userID string,
	toolKey domain.ToolKey,
	projectID uuid.UUID,
	flags domain.ShareFlags,
	scope domain.Scope,
) (*RiskClassification, error) {
	if _, ok := domain.DescribeTool(toolKey); !ok {
		return nil, domain.NewValidationError("toolKey", fmt.Sprintf("unknown tool %q", toolKey))
	}
	if err := validateScope(scope); err != nil {
		return nil, err
	}
	if err := s.access.CanManageShares(ctx, userID, projectID); err != nil {
		return nil, err
	}

	count, err := s.tools.CountGroups(ctx, toolKey, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count groups: %w", err)
	}

	classification := ClassifyRisk(flags, scope, count)
	return &classification, nil
}

func (s *ShareTokenService) entry(token *domain.ShareToken) *ShareTokenEntry {
	return &ShareTokenEntry{
		ShareToken: *token,
		Status:     token.Status(s.now()),
		ShareURL:   fmt.Sprintf("%s/share/%s/%s", s.baseURL, token.ToolKey, token.Secret),
	}
}

func validateScope(scope domain.Scope) error {
	switch scope.Mode {
	case domain.ScopeModeAll, domain.ScopeModeSelected:
		return nil
	default:
		return domain.NewValidationError("scope.mode", fmt.Sprintf("unknown mode %q", scope.Mode))
	}
}
