package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"renolab/internal/domain"
)

// ToolRepository is the read side of the per-tool data services. The sharing
// subsystem never writes through it; CRUD editing happens elsewhere.
type ToolRepository struct {
	db *sqlx.DB
}

func NewToolRepository(db *sqlx.DB) *ToolRepository {
	return &ToolRepository{db: db}
}

// GetGroups returns the live groupable entities of a tool. Soft-deleted
// groups are absent, which is exactly how stale selected-scope ids vanish
// from future public views.
func (r *ToolRepository) GetGroups(ctx context.Context, toolKey domain.ToolKey, projectID uuid.UUID) ([]domain.ToolGroup, error) {
	query := `
        SELECT * FROM tool_groups
        WHERE tool_key = $1 AND project_id = $2 AND deleted_at IS NULL
        ORDER BY position, created_at`

	var groups []domain.ToolGroup
	if err := r.db.SelectContext(ctx, &groups, query, toolKey, projectID); err != nil {
		return nil, fmt.Errorf("failed to get tool groups: %w", err)
	}

	return groups, nil
}

func (r *ToolRepository) CountGroups(ctx context.Context, toolKey domain.ToolKey, projectID uuid.UUID) (int, error) {
	query := `
        SELECT COUNT(*) FROM tool_groups
        WHERE tool_key = $1 AND project_id = $2 AND deleted_at IS NULL`

	var count int
	if err := r.db.GetContext(ctx, &count, query, toolKey, projectID); err != nil {
		return 0, fmt.Errorf("failed to count tool groups: %w", err)
	}

	return count, nil
}

// GetPayload loads the full collection for a tool: live groups and live items
// with their comments and photo references attached.
func (r *ToolRepository) GetPayload(ctx context.Context, toolKey domain.ToolKey, projectID uuid.UUID) (*domain.ToolPayload, error) {
	groups, err := r.GetGroups(ctx, toolKey, projectID)
	if err != nil {
		return nil, err
	}

	itemsQuery := `
        SELECT * FROM tool_items
        WHERE tool_key = $1 AND project_id = $2 AND deleted_at IS NULL
        ORDER BY position, created_at`

	var items []domain.ToolItem
	if err := r.db.SelectContext(ctx, &items, itemsQuery, toolKey, projectID); err != nil {
		return nil, fmt.Errorf("failed to get tool items: %w", err)
	}

	if err := r.attachItemDetails(ctx, items); err != nil {
		return nil, err
	}

	return &domain.ToolPayload{
		ToolKey: toolKey,
		Groups:  groups,
		Items:   items,
	}, nil
}

// GetPhoto looks up a single photo reference and the item it belongs to, used
// by the thumbnail path to confirm the photo is inside the shared project.
func (r *ToolRepository) GetPhoto(ctx context.Context, photoID uuid.UUID) (*domain.ItemPhoto, *domain.ToolItem, error) {
	var photo domain.ItemPhoto
	if err := r.db.GetContext(ctx, &photo, `SELECT * FROM tool_item_photos WHERE id = $1`, photoID); err != nil {
		return nil, nil, fmt.Errorf("failed to get photo: %w", err)
	}

	var item domain.ToolItem
	if err := r.db.GetContext(ctx, &item,
		`SELECT * FROM tool_items WHERE id = $1 AND deleted_at IS NULL`,
		photo.ItemID); err != nil {
		return nil, nil, fmt.Errorf("failed to get photo item: %w", err)
	}

	return &photo, &item, nil
}

func (r *ToolRepository) attachItemDetails(ctx context.Context, items []domain.ToolItem) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	index := make(map[uuid.UUID]*domain.ToolItem, len(items))
	for i := range items {
		items[i].Comments = []domain.ItemComment{}
		items[i].Photos = []domain.ItemPhoto{}
		ids = append(ids, items[i].ID)
		index[items[i].ID] = &items[i]
	}

	commentsQuery, args, err := sqlx.In(
		`SELECT * FROM tool_item_comments WHERE item_id IN (?) ORDER BY created_at`, ids)
	if err != nil {
		return fmt.Errorf("failed to build comments query: %w", err)
	}

	var comments []domain.ItemComment
	if err := r.db.SelectContext(ctx, &comments, r.db.Rebind(commentsQuery), args...); err != nil {
		return fmt.Errorf("failed to get item comments: %w", err)
	}
	for _, c := range comments {
		if item, ok := index[c.ItemID]; ok {
			item.Comments = append(item.Comments, c)
		}
	}

	photosQuery, args, err := sqlx.In(
		`SELECT * FROM tool_item_photos WHERE item_id IN (?) ORDER BY position, created_at`, ids)
	if err != nil {
		return fmt.Errorf("failed to build photos query: %w", err)
	}

	var photos []domain.ItemPhoto
	if err := r.db.SelectContext(ctx, &photos, r.db.Rebind(photosQuery), args...); err != nil {
		return fmt.Errorf("failed to get item photos: %w", err)
	}
	for _, p := range photos {
		if item, ok := index[p.ItemID]; ok {
			item.Photos = append(item.Photos, p)
		}
	}

	return nil
}
