package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// ImageFocus carries optional crop/focus metadata for a recipe image.
type ImageFocus struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom,omitempty"`
}

// Recipe represents a recipe.
//
// Ingredients are ordered lines; a line ending in ":" is a section header,
// not an ingredient. Steps are ordered lines later grouped into cards for
// display. SpaceID is the tenant scope the recipe belongs to and governs
// write permission, independent of the space the UI is currently showing.
type Recipe struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Category    string      `json:"category,omitempty"`
	Time        string      `json:"time,omitempty"`
	Source      string      `json:"source,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Ingredients []string    `json:"ingredients,omitempty"`
	Steps       []string    `json:"steps,omitempty"`
	Image       string      `json:"image,omitempty"`
	ImageFocus  *ImageFocus `json:"imageFocus,omitempty"`
	SpaceID     string      `json:"spaceId"`
	CreatedAt   time.Time   `json:"createdAt"`

	// Pending is true while a write for this recipe sits in the offline
	// queue awaiting replay. Derived at read time, never stored.
	Pending bool `json:"-"`
}

// RecipePart is a directed edge "parent includes child as a component".
// The edge set is not structurally acyclic; traversal must tolerate cycles.
type RecipePart struct {
	ParentID  string `json:"parentId"`
	ChildID   string `json:"childId"`
	SortOrder int    `json:"sortOrder"`
	SpaceID   string `json:"spaceId"`
}

// ActionKind identifies the mutation recorded in an OfflineAction.
type ActionKind string

const (
	ActionRecipeUpsert ActionKind = "recipe_upsert"
	ActionRecipeDelete ActionKind = "recipe_delete"
)

// OfflineAction is a queued mutation awaiting replay against the backend.
// TS is epoch milliseconds; compaction keeps the latest action per recipe.
type OfflineAction struct {
	ID       string     `json:"id"`
	Kind     ActionKind `json:"kind"`
	RecipeID string     `json:"recipeId,omitempty"`
	Recipe   *Recipe    `json:"recipe,omitempty"`
	TS       int64      `json:"ts"`
}

// Timer is a named countdown. EndsAt is an absolute deadline and may lie in
// the past (overdue/ringing) until the timer is extended or dismissed.
type Timer struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	OwnerRecipeID string    `json:"ownerRecipeId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	EndsAt        time.Time `json:"endsAt"`
	Dismissed     bool      `json:"dismissed"`
	Beeped        bool      `json:"beeped"`
}

// CookEvent is one entry of a recipe's cooking log.
type CookEvent struct {
	ID       string    `json:"id"`
	RecipeID string    `json:"recipeId"`
	At       time.Time `json:"at"`
	Rating   int       `json:"rating,omitempty"` // 1-5, 0 when unrated
	Note     string    `json:"note,omitempty"`
}
