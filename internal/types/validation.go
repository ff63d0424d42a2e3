package types

import (
	"fmt"
	"net/http"
	"strings"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ------------------------------
// Shared Errors
// ------------------------------

// ErrNotFound is returned when a recipe does not exist in either store.
var ErrNotFound = fmt.Errorf("recipe not found")

// ErrNoActiveSpace is returned by remote operations invoked without a space
// context. This is a programming error on the caller's side, not a retryable
// condition.
var ErrNoActiveSpace = fmt.Errorf("no active space")

// ------------------------------
// Validation
// ------------------------------

// ValidateIDPresent ensures a required identifier is non-empty.
func ValidateIDPresent(id, field string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// ValidateSpaceID ensures a space context is present.
func ValidateSpaceID(spaceID string) error {
	if strings.TrimSpace(spaceID) == "" {
		return ErrNoActiveSpace
	}
	return nil
}

// ValidateRecipe checks the fields the backend will reject anyway.
func ValidateRecipe(r *Recipe) error {
	if r == nil {
		return fmt.Errorf("recipe is nil")
	}
	if err := ValidateIDPresent(r.ID, "id"); err != nil {
		return err
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// ValidatePart rejects self-loops at the API boundary. The stored edge set
// may still contain cycles through longer paths; traversal guards against
// those separately.
func ValidatePart(parentID, childID string) error {
	if err := ValidateIDPresent(parentID, "parentId"); err != nil {
		return err
	}
	if err := ValidateIDPresent(childID, "childId"); err != nil {
		return err
	}
	if parentID == childID {
		return fmt.Errorf("recipe part may not reference itself")
	}
	return nil
}

// ValidateRating checks a cook-event rating (0 means unrated).
func ValidateRating(rating int) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}
