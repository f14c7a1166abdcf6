package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ScopeMode string

type TokenStatus string

const (
	ScopeModeAll      ScopeMode = "all"
	ScopeModeSelected ScopeMode = "selected"

	TokenStatusActive  TokenStatus = "active"
	TokenStatusExpired TokenStatus = "expired"
	TokenStatusRevoked TokenStatus = "revoked"

	// ShareTokenTTL is fixed for every creation path.
	ShareTokenTTL = 14 * 24 * time.Hour
)

// Scope selects which top-level groups of a tool a share link exposes.
// IDs are meaningful only in selected mode and are matched against the
// live collection at view time.
type Scope struct {
	Mode ScopeMode `json:"mode"`
	IDs  []string  `json:"ids"`
}

// ShareFlags are the three coarse content-inclusion switches.
type ShareFlags struct {
	IncludeNotes    bool `json:"include_notes"`
	IncludeComments bool `json:"include_comments"`
	IncludePhotos   bool `json:"include_photos"`
}

type ShareToken struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	ToolKey         ToolKey        `json:"tool_key" db:"tool_key"`
	ProjectID       uuid.UUID      `json:"project_id" db:"project_id"`
	Secret          string         `json:"secret" db:"secret"`
	ScopeMode       ScopeMode      `json:"scope_mode" db:"scope_mode"`
	ScopeIDs        pq.StringArray `json:"scope_ids" db:"scope_ids"`
	IncludeNotes    bool           `json:"include_notes" db:"include_notes"`
	IncludeComments bool           `json:"include_comments" db:"include_comments"`
	IncludePhotos   bool           `json:"include_photos" db:"include_photos"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	ExpiresAt       time.Time      `json:"expires_at" db:"expires_at"`
	RevokedAt       *time.Time     `json:"revoked_at,omitempty" db:"revoked_at"`
}

func (t *ShareToken) Scope() Scope {
	return Scope{Mode: t.ScopeMode, IDs: t.ScopeIDs}
}

func (t *ShareToken) Flags() ShareFlags {
	return ShareFlags{
		IncludeNotes:    t.IncludeNotes,
		IncludeComments: t.IncludeComments,
		IncludePhotos:   t.IncludePhotos,
	}
}

// Status is computed at read time. Expiry is never stored as a transition,
// so there is no sweep job anywhere.
func (t *ShareToken) Status(now time.Time) TokenStatus {
	if t.RevokedAt != nil {
		return TokenStatusRevoked
	}
	if !now.Before(t.ExpiresAt) {
		return TokenStatusExpired
	}
	return TokenStatusActive
}

// Usable reports whether a public viewer may still resolve the token.
func (t *ShareToken) Usable(now time.Time) bool {
	return t.Status(now) == TokenStatusActive
}
