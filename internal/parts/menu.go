package parts

import "github.com/tinkeroneo/cook-go/internal/types"

// IngredientSection is one titled block of ingredient lines in a menu view.
type IngredientSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// StepSection carries one recipe's step cards within a menu view.
type StepSection struct {
	RecipeID string     `json:"recipeId"`
	Title    string     `json:"title"`
	Cards    []StepCard `json:"cards"`
}

// BuildMenuIngredients produces the combined ingredient sections for a menu
// recipe: the root's own ingredients first (when non-empty), then one
// section per descendant in traversal order. Descendants missing from
// allRecipes are silently skipped.
func BuildMenuIngredients(recipe types.Recipe, allRecipes []types.Recipe, idx Index) []IngredientSection {
	byID := recipesByID(allRecipes)

	var sections []IngredientSection
	if len(recipe.Ingredients) > 0 {
		sections = append(sections, IngredientSection{Title: recipe.Title, Items: recipe.Ingredients})
	}
	for _, childID := range CollectDescendants(recipe.ID, idx, DefaultMaxDepth) {
		child, ok := byID[childID]
		if !ok {
			continue
		}
		sections = append(sections, IngredientSection{Title: child.Title, Items: child.Ingredients})
	}
	return sections
}

// BuildMenuStepSections mirrors BuildMenuIngredients for steps, with each
// recipe's lines pre-split into display cards.
func BuildMenuStepSections(recipe types.Recipe, allRecipes []types.Recipe, idx Index) []StepSection {
	byID := recipesByID(allRecipes)

	var sections []StepSection
	if len(recipe.Steps) > 0 {
		sections = append(sections, StepSection{
			RecipeID: recipe.ID,
			Title:    recipe.Title,
			Cards:    SplitStepCards(recipe.Steps),
		})
	}
	for _, childID := range CollectDescendants(recipe.ID, idx, DefaultMaxDepth) {
		child, ok := byID[childID]
		if !ok {
			continue
		}
		sections = append(sections, StepSection{
			RecipeID: child.ID,
			Title:    child.Title,
			Cards:    SplitStepCards(child.Steps),
		})
	}
	return sections
}

func recipesByID(recipes []types.Recipe) map[string]types.Recipe {
	byID := make(map[string]types.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}
	return byID
}
