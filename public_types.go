package cook

import (
	"github.com/tinkeroneo/cook-go/internal/parts"
	"github.com/tinkeroneo/cook-go/internal/timers"
	"github.com/tinkeroneo/cook-go/internal/types"
)

// Re-exported domain types so callers only import this package.
type (
	Recipe        = types.Recipe
	RecipePart    = types.RecipePart
	OfflineAction = types.OfflineAction
	ActionKind    = types.ActionKind
	Timer         = types.Timer
	CookEvent     = types.CookEvent
	ImageFocus    = types.ImageFocus

	IngredientSection = parts.IngredientSection
	StepSection       = parts.StepSection
	StepCard          = parts.StepCard

	TimerSnapshot = timers.Snapshot
	TimerOption   = timers.Option
)

const (
	ActionRecipeUpsert = types.ActionRecipeUpsert
	ActionRecipeDelete = types.ActionRecipeDelete
)

// SplitStepCards splits a recipe's step lines into display cards; exposed
// for view layers that render a single recipe outside of menu composition.
func SplitStepCards(lines []string) []StepCard {
	return parts.SplitStepCards(lines)
}
