package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"renolab/internal/domain"
)

type ShareTokenRepository struct {
	db *sqlx.DB
}

func NewShareTokenRepository(db *sqlx.DB) *ShareTokenRepository {
	return &ShareTokenRepository{db: db}
}

func (r *ShareTokenRepository) Create(ctx context.Context, token *domain.ShareToken) error {
	query := `
        INSERT INTO share_tokens (
            id, tool_key, project_id, secret, scope_mode, scope_ids,
            include_notes, include_comments, include_photos,
            created_at, expires_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
        )`

	_, err := r.db.ExecContext(
		ctx,
		query,
		token.ID,
		token.ToolKey,
		token.ProjectID,
		token.Secret,
		token.ScopeMode,
		token.ScopeIDs,
		token.IncludeNotes,
		token.IncludeComments,
		token.IncludePhotos,
		token.CreatedAt,
		token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert share token: %w", err)
	}

	return nil
}

// GetBySecret matches the secret exactly. No prefix or fuzzy matching, and no
// state filtering here: the validator owns the lifecycle check.
func (r *ShareTokenRepository) GetBySecret(ctx context.Context, secret string) (*domain.ShareToken, error) {
	query := `SELECT * FROM share_tokens WHERE secret = $1`

	var token domain.ShareToken
	if err := r.db.GetContext(ctx, &token, query, secret); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get share token: %w", err)
	}

	return &token, nil
}

func (r *ShareTokenRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ShareToken, error) {
	query := `SELECT * FROM share_tokens WHERE id = $1`

	var token domain.ShareToken
	if err := r.db.GetContext(ctx, &token, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get share token by id: %w", err)
	}

	return &token, nil
}

// ListByProject returns every token for the project/tool pair, terminal ones
// included, so owners see the full history in the management UI.
func (r *ShareTokenRepository) ListByProject(ctx context.Context, toolKey domain.ToolKey, projectID uuid.UUID) ([]domain.ShareToken, error) {
	query := `
        SELECT * FROM share_tokens
        WHERE tool_key = $1 AND project_id = $2
        ORDER BY created_at DESC`

	var tokens []domain.ShareToken
	if err := r.db.SelectContext(ctx, &tokens, query, toolKey, projectID); err != nil {
		return nil, fmt.Errorf("failed to list share tokens: %w", err)
	}

	return tokens, nil
}

// Revoke sets revoked_at once. Revoking an already-revoked token affects zero
// rows, which is a no-op, not an error.
func (r *ShareTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	query := `
        UPDATE share_tokens
        SET revoked_at = CURRENT_TIMESTAMP
        WHERE id = $1 AND revoked_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to revoke share token: %w", err)
	}

	return nil
}
