package domain

import "time"

// The Public* types are the only shapes ever served to anonymous viewers.
// Sanitization projects into them field by field; anything not listed here
// cannot cross, whatever the source payload carries.

type PublicComment struct {
	AuthorName string    `json:"authorName"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

type PublicPhoto struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type PublicItem struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Status   string          `json:"status,omitempty"`
	Notes    *string         `json:"notes,omitempty"`
	HeroURL  *string         `json:"heroUrl,omitempty"`
	Comments []PublicComment `json:"comments"`
	Photos   []PublicPhoto   `json:"photos"`
}

type PublicGroup struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Items []PublicItem `json:"items"`
}

// PublicPayload is recomputed on every validate call and never persisted.
type PublicPayload struct {
	ToolKey   ToolKey       `json:"toolKey"`
	GroupNoun string        `json:"groupNoun"`
	Groups    []PublicGroup `json:"groups"`
}

// PublicView is the composed result of a successful token validation.
type PublicView struct {
	ProjectName     string        `json:"projectName"`
	Payload         PublicPayload `json:"payload"`
	IncludeNotes    bool          `json:"includeNotes"`
	IncludeComments bool          `json:"includeComments"`
	IncludePhotos   bool          `json:"includePhotos"`
	Scope           Scope         `json:"scope"`
}
