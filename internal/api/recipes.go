package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	apierrors "github.com/tinkeroneo/cook-go/internal/errors"
	"github.com/tinkeroneo/cook-go/internal/types"
)

// ListRecipes retrieves all recipes visible in the space, newest first.
// Ordering is applied server side.
func ListRecipes(ctx context.Context, httpClient HTTPClient, baseURL, spaceID string) ([]types.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateSpaceID(spaceID); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/spaces/%s/recipes", baseURL, url.PathEscape(spaceID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("list recipes", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "list recipes")
	}
	var lr types.ListRecipesResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	return lr.Recipes, nil
}

// UpsertRecipe inserts or replaces the recipe by id and returns the
// canonical stored row. The operation is idempotent: repeating the same
// upsert leaves a single row behind.
func UpsertRecipe(ctx context.Context, httpClient HTTPClient, baseURL, spaceID string, recipe *types.Recipe) (*types.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateSpaceID(spaceID); err != nil {
		return nil, err
	}
	if err := types.ValidateRecipe(recipe); err != nil {
		return nil, err
	}
	body, err := json.Marshal(recipe)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/spaces/%s/recipes/%s", baseURL, url.PathEscape(spaceID), url.PathEscape(recipe.ID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("upsert recipe", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, statusError(resp, "upsert recipe")
	}
	var stored types.Recipe
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// DeleteRecipe removes the recipe by id. Backend returns 204 No Content on
// success.
func DeleteRecipe(ctx context.Context, httpClient HTTPClient, baseURL, spaceID, recipeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateSpaceID(spaceID); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(recipeID, "recipeId"); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/api/spaces/%s/recipes/%s", baseURL, url.PathEscape(spaceID), url.PathEscape(recipeID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return apierrors.NewNetworkError("delete recipe", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent {
		return statusError(resp, "delete recipe")
	}
	return nil
}
