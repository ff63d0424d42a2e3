package cook

import (
	"context"

	"github.com/tinkeroneo/cook-go/internal/api"
	"github.com/tinkeroneo/cook-go/internal/parts"
	"github.com/tinkeroneo/cook-go/internal/types"
)

const partsKey = "recipe_parts"

// LoadParts loads the recipe-part edge set and rebuilds the in-memory
// parent→children index from it. With the backend enabled the edges come
// from the remote store and the local mirror is replaced on success; any
// remote failure falls back to the mirror. The index itself is derived
// state and never persisted.
func (c *Client) LoadParts(ctx context.Context) ([]types.RecipePart, error) {
	var result []types.RecipePart
	err := c.runner.Do(ctx, "loadParts", func(ctx context.Context) error {
		if !c.backend {
			result = c.loadPartsMirror()
			return nil
		}
		remote, err := api.ListAllRecipeParts(ctx, c.http, c.baseURL, c.ActiveSpace())
		if err != nil {
			remoteFallbacks.Inc()
			c.log.Warn().Err(err).Msg("remote parts list failed, serving local mirror")
			result = c.loadPartsMirror()
			return nil
		}
		c.replacePartsMirror(remote)
		result = remote
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.setPartsIndex(parts.BuildIndex(result))
	return result, nil
}

// AddPart attaches child to parent and refreshes the index. Self-loops are
// rejected up front.
func (c *Client) AddPart(ctx context.Context, parentID, childID string, order int) error {
	if err := types.ValidatePart(parentID, childID); err != nil {
		return err
	}
	err := c.runner.Do(ctx, "parts", func(ctx context.Context) error {
		if c.backend {
			if err := api.AddRecipePart(ctx, c.http, c.baseURL, c.ActiveSpace(), parentID, childID, order); err != nil {
				return err
			}
		}
		c.mirrorMu.Lock()
		mirror := append(c.loadPartsMirrorLocked(), types.RecipePart{
			ParentID:  parentID,
			ChildID:   childID,
			SortOrder: order,
			SpaceID:   c.ActiveSpace(),
		})
		c.store.Set(partsKey, mirror)
		c.mirrorMu.Unlock()
		c.setPartsIndex(parts.BuildIndex(mirror))
		return nil
	})
	return err
}

// RemovePart detaches child from parent and refreshes the index.
func (c *Client) RemovePart(ctx context.Context, parentID, childID string) error {
	return c.runner.Do(ctx, "parts", func(ctx context.Context) error {
		if c.backend {
			if err := api.RemoveRecipePart(ctx, c.http, c.baseURL, c.ActiveSpace(), parentID, childID); err != nil {
				return err
			}
		}
		c.mirrorMu.Lock()
		mirror := c.loadPartsMirrorLocked()
		kept := mirror[:0]
		for _, e := range mirror {
			if e.ParentID != parentID || e.ChildID != childID {
				kept = append(kept, e)
			}
		}
		c.store.Set(partsKey, kept)
		c.mirrorMu.Unlock()
		c.setPartsIndex(parts.BuildIndex(kept))
		return nil
	})
}

// IsMenuRecipe reports whether the recipe has at least one attached part.
// This is the sole signal for switching between flat-recipe and menu UI.
func (c *Client) IsMenuRecipe(recipeID string) bool {
	return parts.IsMenuRecipe(recipeID, c.partsIndex())
}

// MenuIngredients returns the combined ingredient sections for a menu
// recipe: its own ingredients first, then one section per transitively
// included part in traversal order.
func (c *Client) MenuIngredients(ctx context.Context, recipeID string) ([]parts.IngredientSection, error) {
	recipe, all, err := c.recipeAndAll(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return parts.BuildMenuIngredients(recipe, all, c.partsIndex()), nil
}

// MenuSteps returns the combined step sections, each recipe's lines split
// into display cards.
func (c *Client) MenuSteps(ctx context.Context, recipeID string) ([]parts.StepSection, error) {
	recipe, all, err := c.recipeAndAll(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return parts.BuildMenuStepSections(recipe, all, c.partsIndex()), nil
}

func (c *Client) recipeAndAll(ctx context.Context, recipeID string) (types.Recipe, []types.Recipe, error) {
	all, err := c.GetAll(ctx)
	if err != nil {
		return types.Recipe{}, nil, err
	}
	for _, r := range all {
		if r.ID == recipeID {
			return r, all, nil
		}
	}
	return types.Recipe{}, nil, ErrNotFound
}

func (c *Client) loadPartsMirror() []types.RecipePart {
	c.mirrorMu.Lock()
	defer c.mirrorMu.Unlock()
	return c.loadPartsMirrorLocked()
}

func (c *Client) loadPartsMirrorLocked() []types.RecipePart {
	var mirror []types.RecipePart
	c.store.Get(partsKey, &mirror)
	return mirror
}

func (c *Client) replacePartsMirror(edges []types.RecipePart) {
	c.mirrorMu.Lock()
	c.store.Set(partsKey, edges)
	c.mirrorMu.Unlock()
}

func (c *Client) partsIndex() parts.Index {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.partsIdx == nil {
		return parts.Index{}
	}
	return c.partsIdx
}

func (c *Client) setPartsIndex(idx parts.Index) {
	c.mu.Lock()
	c.partsIdx = idx
	c.mu.Unlock()
}
