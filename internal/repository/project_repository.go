package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"renolab/internal/domain"
)

type ProjectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	query := `SELECT * FROM projects WHERE id = $1`

	var project domain.Project
	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

// GetRole resolves the caller's role on a project. The project owner is
// authoritative from the projects table itself; everyone else comes from the
// access table. No row means no access at all.
func (r *ProjectRepository) GetRole(ctx context.Context, projectID uuid.UUID, userID string) (domain.ProjectRole, bool, error) {
	var ownerID string
	if err := r.db.GetContext(ctx, &ownerID, `SELECT owner_id FROM projects WHERE id = $1`, projectID); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get project owner: %w", err)
	}

	if ownerID == userID {
		return domain.RoleOwner, true, nil
	}

	var role domain.ProjectRole
	query := `SELECT role FROM project_access WHERE project_id = $1 AND user_id = $2`
	if err := r.db.GetContext(ctx, &role, query, projectID, userID); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get project role: %w", err)
	}

	return role, true, nil
}

// CountSeats derives seat usage from the access table at request time.
// Keeping this a query instead of a stored counter avoids stale counts under
// concurrent invites.
func (r *ProjectRepository) CountSeats(ctx context.Context, projectID uuid.UUID) (*domain.SeatUsage, error) {
	query := `
        SELECT
            COUNT(*) FILTER (WHERE role = 'edit') AS edit_seats_used,
            COUNT(*) FILTER (WHERE role = 'view') AS view_seats_used
        FROM project_access
        WHERE project_id = $1`

	var usage domain.SeatUsage
	if err := r.db.GetContext(ctx, &usage, query, projectID); err != nil {
		return nil, fmt.Errorf("failed to count seats: %w", err)
	}

	return &usage, nil
}
