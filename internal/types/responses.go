package types

// ------------------------------
// Response Types
// ------------------------------

// ListRecipesResponse wraps the recipe list endpoint response.
type ListRecipesResponse struct {
	Recipes []Recipe `json:"recipes"`
	Count   int      `json:"count"`
}

// ListRecipePartsResponse wraps the recipe-part list endpoint response.
type ListRecipePartsResponse struct {
	Parts []RecipePart `json:"parts"`
	Count int          `json:"count"`
}
