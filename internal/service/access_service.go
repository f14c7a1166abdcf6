package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"renolab/internal/domain"
)

// ProjectStore is the slice of project/collaborator data the sharing
// subsystem reads. Implemented by repository.ProjectRepository.
type ProjectStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	GetRole(ctx context.Context, projectID uuid.UUID, userID string) (domain.ProjectRole, bool, error)
	CountSeats(ctx context.Context, projectID uuid.UUID) (*domain.SeatUsage, error)
}

// AccessService decides who may manage share tokens (owner only), who may use
// the export/print path (any collaborator), and leaves anonymous viewers to
// the public resolution path. Pure authorization reads, no side effects.
type AccessService struct {
	projects ProjectStore
}

func NewAccessService(projects ProjectStore) *AccessService {
	return &AccessService{projects: projects}
}

// CanManageShares is the create/list/revoke gate. Only the project owner
// passes. The management UI hides these affordances for non-owners too, but
// the server rejects regardless.
func (s *AccessService) CanManageShares(ctx context.Context, userID string, projectID uuid.UUID) error {
	role, ok, err := s.projects.GetRole(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to resolve project role: %w", err)
	}
	if !ok || role != domain.RoleOwner {
		return domain.ErrPermissionDenied
	}
	return nil
}

// CanExport is the export/print gate: any collaborator on the project,
// whatever their role.
func (s *AccessService) CanExport(ctx context.Context, userID string, projectID uuid.UUID) error {
	_, ok, err := s.projects.GetRole(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to resolve project role: %w", err)
	}
	if !ok {
		return domain.ErrPermissionDenied
	}
	return nil
}

// SeatUsage reports derived collaborator seat counts, owner only.
func (s *AccessService) SeatUsage(ctx context.Context, userID string, projectID uuid.UUID) (*domain.SeatUsage, error) {
	if err := s.CanManageShares(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.projects.CountSeats(ctx, projectID)
}
