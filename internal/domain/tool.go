package domain

import (
	"time"

	"github.com/google/uuid"
)

type ToolKey string

const (
	ToolFixList         ToolKey = "fix-list"
	ToolMoodBoard       ToolKey = "mood-board"
	ToolDecisionTracker ToolKey = "decision-tracker"
)

// ToolDescriptor names the per-tool surface of the shared groupable-collection
// schema. All three tools run through the same resolver/sanitizer engine; the
// descriptor only carries what genuinely differs between them.
type ToolDescriptor struct {
	Key       ToolKey
	Title     string
	GroupNoun string // "location", "board", "room"
}

var toolDescriptors = map[ToolKey]ToolDescriptor{
	ToolFixList:         {Key: ToolFixList, Title: "Fix List", GroupNoun: "location"},
	ToolMoodBoard:       {Key: ToolMoodBoard, Title: "Mood Boards", GroupNoun: "board"},
	ToolDecisionTracker: {Key: ToolDecisionTracker, Title: "Decision Tracker", GroupNoun: "room"},
}

// DescribeTool resolves a tool key from a URL segment. Unknown keys return
// ok=false; handlers turn that into a validation error.
func DescribeTool(key ToolKey) (ToolDescriptor, bool) {
	d, ok := toolDescriptors[key]
	return d, ok
}

// ToolGroup is a top-level groupable entity: a fix-list location, a mood
// board, or a decision-tracker room.
type ToolGroup struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	ProjectID uuid.UUID  `json:"project_id" db:"project_id"`
	ToolKey   ToolKey    `json:"tool_key" db:"tool_key"`
	Name      string     `json:"name" db:"name"`
	Position  int        `json:"position" db:"position"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

type ToolItem struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	ProjectID    uuid.UUID  `json:"project_id" db:"project_id"`
	ToolKey      ToolKey    `json:"tool_key" db:"tool_key"`
	GroupID      uuid.UUID  `json:"group_id" db:"group_id"`
	Title        string     `json:"title" db:"title"`
	Status       string     `json:"status" db:"status"`
	Notes        *string    `json:"notes,omitempty" db:"notes"`
	HeroPhotoKey *string    `json:"hero_photo_key,omitempty" db:"hero_photo_key"`
	CreatedBy    string     `json:"created_by" db:"created_by"`
	Position     int        `json:"position" db:"position"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`

	Comments []ItemComment `json:"comments"`
	Photos   []ItemPhoto   `json:"photos"`
}

type ItemComment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ItemID      uuid.UUID `json:"item_id" db:"item_id"`
	AuthorName  string    `json:"author_name" db:"author_name"`
	AuthorEmail string    `json:"author_email" db:"author_email"`
	Body        string    `json:"body" db:"body"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type ItemPhoto struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ItemID    uuid.UUID `json:"item_id" db:"item_id"`
	ObjectKey string    `json:"object_key" db:"object_key"`
	Caption   string    `json:"caption" db:"caption"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ToolPayload is the full internal collection a tool's data service hands to
// the sharing subsystem: every live group with its items.
type ToolPayload struct {
	ToolKey ToolKey     `json:"tool_key"`
	Groups  []ToolGroup `json:"groups"`
	Items   []ToolItem  `json:"items"`
}
