package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renolab/internal/domain"
)

type shareTokenFixture struct {
	service   *ShareTokenService
	tokens    *fakeTokenStore
	projects  *fakeProjectStore
	tools     *fakeToolData
	projectID uuid.UUID
	now       time.Time
}

func newShareTokenFixture(t *testing.T) *shareTokenFixture {
	t.Helper()

	tokens := newFakeTokenStore()
	projects := newFakeProjectStore()
	tools := newFakeToolData()

	projectID := projects.addProject("Maple Street Reno", "user-owner")
	projects.addCollaborator(projectID, "user-edit", domain.RoleEdit)
	projects.addCollaborator(projectID, "user-view", domain.RoleView)
	tools.setPayload(domain.ToolDecisionTracker, projectID, decisionTrackerPayload(projectID))

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return now }

	access := NewAccessService(projects)
	svc := NewShareTokenService(tokens, access, tools, "https://app.example.test")
	svc.now = func() time.Time { return now }

	return &shareTokenFixture{
		service:   svc,
		tokens:    tokens,
		projects:  projects,
		tools:     tools,
		projectID: projectID,
		now:       now,
	}
}

func TestCreateTokenEnforcesFixedTTL(t *testing.T) {
	f := newShareTokenFixture(t)

	entry, err := f.service.CreateToken(
		context.Background(),
		"user-owner",
		domain.ToolDecisionTracker,
		f.projectID,
		domain.ShareFlags{IncludeNotes: true},
		domain.Scope{Mode: domain.ScopeModeAll},
	)

	require.NoError(t, err)
	assert.Equal(t, domain.TokenStatusActive, entry.Status)
	assert.NotEmpty(t, entry.Secret)
	assert.Equal(t, f.now, entry.CreatedAt)
	assert.Equal(t, f.now.Add(14*24*time.Hour), entry.ExpiresAt)
	assert.Contains(t, entry.ShareURL, "/share/decision-tracker/"+entry.Secret)
	assert.Nil(t, entry.RevokedAt)
}

func TestCreateTokenMintsIndependentSecrets(t *testing.T) {
	f := newShareTokenFixture(t)
	ctx := context.Background()

	first, err := f.service.CreateToken(ctx, "user-owner", domain.ToolDecisionTracker, f.projectID,
		domain.ShareFlags{IncludeNotes: true}, domain.Scope{Mode: domain.ScopeModeAll})
	require.NoError(t, err)

	// Same configuration again: a fresh token, never a reused row.
	second, err := f.service.CreateToken(ctx, "user-owner", domain.ToolDecisionTracker, f.projectID,
		domain.ShareFlags{IncludeNotes: true}, domain.Scope{Mode: domain.ScopeModeAll})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.Secret, second.Secret)
}

func TestCreateTokenRejectsNonOwners(t *testing.T) {
	f := newShareTokenFixture(t)
	ctx := context.Background()

	for _, userID := range []string{"user-edit", "user-view", "user-stranger"} {
		_, err := f.service.CreateToken(ctx, userID, domain.ToolDecisionTracker, f.projectID,
			domain.ShareFlags{}, domain.Scope{Mode: domain.ScopeModeAll})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied, "user %s", userID)
	}
}

func TestCreateTokenValidatesInput(t *testing.T) {
	f := newShareTokenFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateToken(ctx, "user-owner", domain.ToolKey("whiteboard"), f.projectID,
		domain.ShareFlags{}, domain.Scope{Mode: domain.ScopeModeAll})
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "toolKey", validation.Field)

	_, err = f.service.CreateToken(ctx, "user-owner", domain.ToolDecisionTracker, f.projectID,
		domain.ShareFlags{}, domain.Scope{Mode: domain.ScopeMode("some")})
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "scope.mode", validation.Field)
}

func TestListTokensIncludesTerminalStates(t *testing.T) {
	f := newShareTokenFixture(t)
	ctx := context.Background()

	active, err := f.service.CreateToken(ctx, "user-owner", domain.ToolDecisionTracker, f.projectID,
		domain.ShareFlags{}, domain.Scope{Mode: domain.ScopeModeAll})
	require.NoError(t, err)

	revoked, err := f.service.CreateToken(ctx, "user-owner", domain.ToolDecisionTracker, f.projectID,
		domain.ShareFlags{}, domain.Scope{Mode: domain.ScopeModeAll})
	require.NoError(t, err)
	require.NoError(t, f.service.RevokeToken(ctx, "user-owner", domain.ToolDecisionTracker, f.projectID, revoked.ID))

	expired, err := f.service.CreateToken(ctx, "user-owner", domain.ToolDecisionTracker, f.projectID,
		domain.ShareFlags{}, domain.Scope{Mode: domain.ScopeModeAll})
	require.NoError(t, err)
	f.tokens.bySecret[expired.Secret].ExpiresAt = f.now.Add(-time.Hour)

	entries, err := f.service.ListTokens(ctx, "user-owner", domain.ToolDecisionTracker, f.projectID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	statuses := map[uuid.UUID]domain.TokenStatus{}
	for _, entry := range entries {
		statuses[entry.ID] = entry.Status
	}
	assert.Equal(t, domain.TokenStatusActive, statuses[active.ID])
	assert.Equal(t, domain.TokenStatusRevoked, statuses[revoked.ID])
	assert.Equal(t, domain.TokenStatusExpired, statuses[expired.ID])

	_, err = f.service.ListTokens(ctx, "user-edit", domain.ToolDecisionTracker, f.projectID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestRevokeTokenIsIdempotent(t *testing.T) {
	f := newShareTokenFixture(t)
	ctx := context.Background()

	entry, err := f.service.CreateToken(ctx, "user-owner", domain.ToolDecisionTracker, f.projectID,
		domain.ShareFlags{}, domain.Scope{Mode: domain.ScopeModeAll})
	require.NoError(t, err)

	require.NoError(t, f.service.RevokeToken(ctx, "user-owner", domain.ToolDecisionTracker, f.projectID, entry.ID))
	require.NotNil(t, f.tokens.bySecret[entry.Secret].RevokedAt)
	firstRevokedAt := *f.tokens.bySecret[entry.Secret].RevokedAt

	// A second revoke is a no-op, not an error, and keeps the original time.
	require.NoError(t, f.service.RevokeToken(ctx, "user-owner", domain.ToolDecisionTracker, f.projectID, entry.ID))
	assert.Equal(t, firstRevokedAt, *f.tokens.bySecret[entry.Secret].RevokedAt)

	// Revoking an unknown id is also a no-op.
	assert.NoError(t, f.service.RevokeToken(ctx, "user-owner", domain.ToolDecisionTracker, f.projectID, uuid.New()))
}

func TestRevokeTokenRejectsCrossProjectAccess(t *testing.T) {
	f := newShareTokenFixture(t)
	ctx := context.Background()

	entry, err := f.service.CreateToken(ctx, "user-owner", domain.ToolDecisionTracker, f.projectID,
		domain.ShareFlags{}, domain.Scope{Mode: domain.ScopeModeAll})
	require.NoError(t, err)

	otherProject := f.projects.addProject("Other Build", "user-other")
	err = f.service.RevokeToken(ctx, "user-other", domain.ToolDecisionTracker, otherProject, entry.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Nil(t, f.tokens.bySecret[entry.Secret].RevokedAt)
}

func TestClassifyUsesLiveGroupCount(t *testing.T) {
	f := newShareTokenFixture(t)
	ctx := context.Background()

	got, err := f.service.Classify(ctx, "user-owner", domain.ToolDecisionTracker, f.projectID,
		domain.ShareFlags{IncludeNotes: true}, domain.Scope{Mode: domain.ScopeModeAll})
	require.NoError(t, err)
	assert.True(t, got.Risky)
	assert.Equal(t, 3, got.GroupCount)

	got, err = f.service.Classify(ctx, "user-owner", domain.ToolDecisionTracker, f.projectID,
		domain.ShareFlags{IncludeNotes: true},
		domain.Scope{Mode: domain.ScopeModeSelected, IDs: []string{uuid.NewString()}})
	require.NoError(t, err)
	assert.False(t, got.Risky)

	_, err = f.service.Classify(ctx, "user-edit", domain.ToolDecisionTracker, f.projectID,
		domain.ShareFlags{IncludeNotes: true}, domain.Scope{Mode: domain.ScopeModeAll})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}
