package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"renolab/internal/domain"
)

// ExportService feeds the print/PDF path. Unlike the public path it serves
// the full internal payload, and unlike management it is open to every
// collaborator on the project, not just the owner.
type ExportService struct {
	access   *AccessService
	projects ProjectStore
	tools    ToolData
}

type Export struct {
	ProjectName string             `json:"project_name"`
	Payload     domain.ToolPayload `json:"payload"`
}

func NewExportService(access *AccessService, projects ProjectStore, tools ToolData) *ExportService {
	return &ExportService{access: access, projects: projects, tools: tools}
}

func (s *ExportService) Export(ctx context.Context, userID string, toolKey domain.ToolKey, projectID uuid.UUID) (*Export, error) {
	if _, ok := domain.DescribeTool(toolKey); !ok {
		return nil, domain.NewValidationError("toolKey", fmt.Sprintf("unknown tool %q", toolKey))
	}
	if err := s.access.CanExport(ctx, userID, projectID); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil {
		return nil, domain.ErrPermissionDenied
	}

	payload, err := s.tools.GetPayload(ctx, toolKey, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tool payload: %w", err)
	}

	return &Export{ProjectName: project.Name, Payload: *payload}, nil
}
