package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"renolab/internal/domain"
)

// In-memory fakes for the storage interfaces, shared by the service tests.

type fakeTokenStore struct {
	bySecret map[string]*domain.ShareToken
	now      func() time.Time
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		bySecret: make(map[string]*domain.ShareToken),
		now:      time.Now,
	}
}

func (f *fakeTokenStore) Create(_ context.Context, token *domain.ShareToken) error {
	if _, exists := f.bySecret[token.Secret]; exists {
		return fmt.Errorf("duplicate secret")
	}
	copied := *token
	f.bySecret[token.Secret] = &copied
	return nil
}

func (f *fakeTokenStore) GetBySecret(_ context.Context, secret string) (*domain.ShareToken, error) {
	token, ok := f.bySecret[secret]
	if !ok {
		return nil, nil
	}
	copied := *token
	return &copied, nil
}

func (f *fakeTokenStore) GetByID(_ context.Context, id uuid.UUID) (*domain.ShareToken, error) {
	for _, token := range f.bySecret {
		if token.ID == id {
			copied := *token
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeTokenStore) ListByProject(_ context.Context, toolKey domain.ToolKey, projectID uuid.UUID) ([]domain.ShareToken, error) {
	var tokens []domain.ShareToken
	for _, token := range f.bySecret {
		if token.ToolKey == toolKey && token.ProjectID == projectID {
			tokens = append(tokens, *token)
		}
	}
	return tokens, nil
}

func (f *fakeTokenStore) Revoke(_ context.Context, id uuid.UUID) error {
	for _, token := range f.bySecret {
		if token.ID == id && token.RevokedAt == nil {
			at := f.now()
			token.RevokedAt = &at
		}
	}
	return nil
}

type fakeProjectStore struct {
	projects map[uuid.UUID]*domain.Project
	roles    map[string]domain.ProjectRole
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{
		projects: make(map[uuid.UUID]*domain.Project),
		roles:    make(map[string]domain.ProjectRole),
	}
}

func (f *fakeProjectStore) addProject(name, ownerID string) uuid.UUID {
	id := uuid.New()
	f.projects[id] = &domain.Project{ID: id, Name: name, OwnerID: ownerID}
	return id
}

func (f *fakeProjectStore) addCollaborator(projectID uuid.UUID, userID string, role domain.ProjectRole) {
	f.roles[projectID.String()+"/"+userID] = role
}

func (f *fakeProjectStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, nil
	}
	copied := *project
	return &copied, nil
}

func (f *fakeProjectStore) GetRole(_ context.Context, projectID uuid.UUID, userID string) (domain.ProjectRole, bool, error) {
	project, ok := f.projects[projectID]
	if !ok {
		return "", false, nil
	}
	if project.OwnerID == userID {
		return domain.RoleOwner, true, nil
	}
	role, ok := f.roles[projectID.String()+"/"+userID]
	return role, ok, nil
}

func (f *fakeProjectStore) CountSeats(_ context.Context, projectID uuid.UUID) (*domain.SeatUsage, error) {
	usage := &domain.SeatUsage{}
	prefix := projectID.String() + "/"
	for key, role := range f.roles {
		if len(key) < len(prefix) || key[:len(prefix)] != prefix {
			continue
		}
		switch role {
		case domain.RoleEdit:
			usage.EditSeatsUsed++
		case domain.RoleView:
			usage.ViewSeatsUsed++
		}
	}
	return usage, nil
}

type fakeToolData struct {
	payloads map[string]*domain.ToolPayload
}

func newFakeToolData() *fakeToolData {
	return &fakeToolData{payloads: make(map[string]*domain.ToolPayload)}
}

func toolDataKey(toolKey domain.ToolKey, projectID uuid.UUID) string {
	return string(toolKey) + "/" + projectID.String()
}

func (f *fakeToolData) setPayload(toolKey domain.ToolKey, projectID uuid.UUID, payload domain.ToolPayload) {
	f.payloads[toolDataKey(toolKey, projectID)] = &payload
}

func (f *fakeToolData) GetGroups(_ context.Context, toolKey domain.ToolKey, projectID uuid.UUID) ([]domain.ToolGroup, error) {
	payload, ok := f.payloads[toolDataKey(toolKey, projectID)]
	if !ok {
		return nil, nil
	}
	return payload.Groups, nil
}

func (f *fakeToolData) CountGroups(_ context.Context, toolKey domain.ToolKey, projectID uuid.UUID) (int, error) {
	payload, ok := f.payloads[toolDataKey(toolKey, projectID)]
	if !ok {
		return 0, nil
	}
	return len(payload.Groups), nil
}

func (f *fakeToolData) GetPayload(_ context.Context, toolKey domain.ToolKey, projectID uuid.UUID) (*domain.ToolPayload, error) {
	payload, ok := f.payloads[toolDataKey(toolKey, projectID)]
	if !ok {
		return &domain.ToolPayload{ToolKey: toolKey, Groups: []domain.ToolGroup{}, Items: []domain.ToolItem{}}, nil
	}
	copied := *payload
	return &copied, nil
}

func (f *fakeToolData) GetPhoto(_ context.Context, photoID uuid.UUID) (*domain.ItemPhoto, *domain.ToolItem, error) {
	for _, payload := range f.payloads {
		for i := range payload.Items {
			for _, photo := range payload.Items[i].Photos {
				if photo.ID == photoID {
					p := photo
					item := payload.Items[i]
					return &p, &item, nil
				}
			}
		}
	}
	return nil, nil, fmt.Errorf("photo not found")
}

type fakeSigner struct{}

func (fakeSigner) SignedURL(_ context.Context, objectKey string) (string, error) {
	return "https://cdn.example.test/" + objectKey, nil
}

func strPtr(s string) *string {
	return &s
}

// decisionTrackerPayload builds a three-room decision tracker with notes,
// comments carrying author emails, and photos.
func decisionTrackerPayload(projectID uuid.UUID) domain.ToolPayload {
	groups := make([]domain.ToolGroup, 3)
	for i, name := range []string{"Kitchen", "Bathroom", "Hallway"} {
		groups[i] = domain.ToolGroup{
			ID:        uuid.New(),
			ProjectID: projectID,
			ToolKey:   domain.ToolDecisionTracker,
			Name:      name,
			Position:  i,
		}
	}

	items := []domain.ToolItem{
		{
			ID:           uuid.New(),
			ProjectID:    projectID,
			ToolKey:      domain.ToolDecisionTracker,
			GroupID:      groups[0].ID,
			Title:        "Countertop material",
			Status:       "decided",
			Notes:        strPtr("Quartz won over marble on maintenance."),
			HeroPhotoKey: strPtr("photos/countertop.jpg"),
			CreatedBy:    "user-owner",
			Comments: []domain.ItemComment{
				{
					ID:          uuid.New(),
					AuthorName:  "Dana",
					AuthorEmail: "dana@example.com",
					Body:        "Quartz gets my vote.",
					CreatedAt:   time.Now().Add(-time.Hour),
				},
			},
			Photos: []domain.ItemPhoto{
				{ID: uuid.New(), ObjectKey: "photos/quartz-sample.jpg", Caption: "Sample"},
			},
		},
		{
			ID:        uuid.New(),
			ProjectID: projectID,
			ToolKey:   domain.ToolDecisionTracker,
			GroupID:   groups[1].ID,
			Title:     "Shower fixture finish",
			Status:    "open",
			Notes:     strPtr("Leaning brushed nickel."),
			CreatedBy: "user-owner",
			Comments:  []domain.ItemComment{},
			Photos:    []domain.ItemPhoto{},
		},
		{
			ID:        uuid.New(),
			ProjectID: projectID,
			ToolKey:   domain.ToolDecisionTracker,
			GroupID:   groups[2].ID,
			Title:     "Runner or bare floor",
			Status:    "open",
			CreatedBy: "user-edit",
			Comments:  []domain.ItemComment{},
			Photos:    []domain.ItemPhoto{},
		},
	}

	return domain.ToolPayload{
		ToolKey: domain.ToolDecisionTracker,
		Groups:  groups,
		Items:   items,
	}
}
