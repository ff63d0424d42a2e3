package cook

import (
	"context"
	"time"

	"github.com/tinkeroneo/cook-go/internal/api"
	"github.com/tinkeroneo/cook-go/internal/offline"
	"github.com/tinkeroneo/cook-go/internal/types"
)

const recipesKey = "recipes"

// GetAll returns every recipe visible in the active space.
//
// With the backend disabled it serves the local mirror. With it enabled it
// fetches the remote list and, on success, replaces the mirror outright —
// the mirror is a copy of the last successful remote read, never a merge.
// Any remote failure (offline, timeout, missing space) falls back silently
// to the mirror, so reads feel seamless regardless of connectivity. The
// only errors returned are a cancelled context or a closed client.
func (c *Client) GetAll(ctx context.Context) ([]types.Recipe, error) {
	var result []types.Recipe
	err := c.runner.Do(ctx, "loadAll", func(ctx context.Context) error {
		if !c.backend {
			result = c.annotatePending(c.loadMirror())
			return nil
		}
		remote, err := api.ListRecipes(ctx, c.http, c.baseURL, c.ActiveSpace())
		if err != nil {
			remoteFallbacks.Inc()
			c.log.Warn().Err(err).Msg("remote list failed, serving local mirror")
			result = c.annotatePending(c.loadMirror())
			return nil
		}
		remote = normalizeRecipes(remote)
		c.replaceMirror(remote)
		result = c.annotatePending(remote)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Upsert writes the recipe locally first, so the change is visible
// immediately regardless of connectivity, then pushes it to the backend.
//
// A remote failure propagates to the caller while the local write stays in
// place; queue a retry with QueueUpsert to preserve it across sessions.
// With refresh true the full remote list is re-fetched afterwards and the
// mirror re-synchronized, picking up server-assigned fields; with refresh
// false the locally-merged list is returned without the extra round trip.
func (c *Client) Upsert(ctx context.Context, recipe types.Recipe, refresh bool) ([]types.Recipe, error) {
	if err := types.ValidateRecipe(&recipe); err != nil {
		return nil, err
	}
	// One normalized value feeds both the local merge and the remote body,
	// so the backend never receives a row differing from the mirror.
	normalizeRecipe(&recipe)
	if recipe.SpaceID == "" {
		recipe.SpaceID = c.ActiveSpace()
	}
	var result []types.Recipe
	err := c.runner.Do(ctx, "upsert:"+recipe.ID, func(ctx context.Context) error {
		merged := c.mergeLocal(recipe)
		localWrites.Inc()
		if !c.backend {
			result = c.annotatePending(merged)
			return nil
		}
		if _, err := api.UpsertRecipe(ctx, c.http, c.baseURL, c.ActiveSpace(), &recipe); err != nil {
			return err
		}
		if !refresh {
			result = c.annotatePending(merged)
			return nil
		}
		remote, err := api.ListRecipes(ctx, c.http, c.baseURL, c.ActiveSpace())
		if err != nil {
			// The write succeeded; a failed refresh degrades to the merged
			// local view like any other read failure.
			remoteFallbacks.Inc()
			result = c.annotatePending(merged)
			return nil
		}
		remote = normalizeRecipes(remote)
		c.replaceMirror(remote)
		result = c.annotatePending(remote)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Remove deletes the recipe from the local mirror unconditionally and,
// with the backend enabled, issues the remote delete, whose failure is
// returned to the caller.
func (c *Client) Remove(ctx context.Context, recipeID string) error {
	if err := types.ValidateIDPresent(recipeID, "recipeId"); err != nil {
		return err
	}
	return c.runner.Do(ctx, "upsert:"+recipeID, func(ctx context.Context) error {
		c.removeFromMirror(recipeID)
		if !c.backend {
			return nil
		}
		return api.DeleteRecipe(ctx, c.http, c.baseURL, c.ActiveSpace(), recipeID)
	})
}

// QueueUpsert records the recipe in the offline queue for later replay and
// returns the queue depth. Requires a session.
func (c *Client) QueueUpsert(recipe types.Recipe) (int, error) {
	if err := types.ValidateRecipe(&recipe); err != nil {
		return 0, err
	}
	queue, err := c.activeQueue()
	if err != nil {
		return 0, err
	}
	c.mergeLocal(recipe)
	return queue.Enqueue(types.OfflineAction{
		Kind:     types.ActionRecipeUpsert,
		RecipeID: recipe.ID,
		Recipe:   &recipe,
	}), nil
}

// QueueDelete records a deletion in the offline queue and returns the
// queue depth. The local mirror is updated immediately.
func (c *Client) QueueDelete(recipeID string) (int, error) {
	if err := types.ValidateIDPresent(recipeID, "recipeId"); err != nil {
		return 0, err
	}
	queue, err := c.activeQueue()
	if err != nil {
		return 0, err
	}
	c.removeFromMirror(recipeID)
	return queue.Enqueue(types.OfflineAction{
		Kind:     types.ActionRecipeDelete,
		RecipeID: recipeID,
	}), nil
}

// PendingRecipeIDs returns the recipes with an outstanding queued action,
// for the "pending sync" badge. Empty without a session.
func (c *Client) PendingRecipeIDs() map[string]bool {
	queue, err := c.activeQueue()
	if err != nil {
		return map[string]bool{}
	}
	return queue.PendingRecipeIDs()
}

// Sync compacts and drains the offline queue against the backend, then
// refreshes the mirror. Returns the number of actions replayed; a
// transient failure stops the drain and leaves the remainder queued.
func (c *Client) Sync(ctx context.Context) (int, error) {
	queue, err := c.activeQueue()
	if err != nil {
		return 0, err
	}
	if !c.backend {
		return 0, ErrBackendDisabled
	}
	replayed := 0
	err = c.runner.Do(ctx, "drain", func(ctx context.Context) error {
		n, err := queue.Drain(ctx, offline.DispatcherFunc(c.applyAction))
		replayed = n
		return err
	})
	if replayed > 0 {
		if _, refreshErr := c.GetAll(ctx); refreshErr != nil {
			c.log.Warn().Err(refreshErr).Msg("post-sync refresh failed")
		}
	}
	return replayed, err
}

// applyAction dispatches one queued action to the backend.
func (c *Client) applyAction(ctx context.Context, action types.OfflineAction) error {
	switch action.Kind {
	case types.ActionRecipeUpsert:
		_, err := api.UpsertRecipe(ctx, c.http, c.baseURL, c.ActiveSpace(), action.Recipe)
		return err
	case types.ActionRecipeDelete:
		return api.DeleteRecipe(ctx, c.http, c.baseURL, c.ActiveSpace(), action.RecipeID)
	default:
		c.log.Warn().Str("kind", string(action.Kind)).Msg("skipping unknown action kind")
		return nil
	}
}

// ------------------------------
// Mirror helpers
// ------------------------------

func (c *Client) loadMirror() []types.Recipe {
	c.mirrorMu.Lock()
	defer c.mirrorMu.Unlock()
	return c.loadMirrorLocked()
}

func (c *Client) loadMirrorLocked() []types.Recipe {
	var mirror []types.Recipe
	c.store.Get(recipesKey, &mirror)
	return normalizeRecipes(mirror)
}

func (c *Client) replaceMirror(recipes []types.Recipe) {
	c.mirrorMu.Lock()
	c.store.Set(recipesKey, recipes)
	c.mirrorMu.Unlock()
}

// mergeLocal inserts or replaces the recipe in the mirror (new recipes
// first, matching the backend's newest-first ordering) and persists it.
func (c *Client) mergeLocal(recipe types.Recipe) []types.Recipe {
	normalizeRecipe(&recipe)
	if recipe.SpaceID == "" {
		recipe.SpaceID = c.ActiveSpace()
	}
	c.mirrorMu.Lock()
	defer c.mirrorMu.Unlock()
	mirror := c.loadMirrorLocked()
	replaced := false
	for i := range mirror {
		if mirror[i].ID == recipe.ID {
			mirror[i] = recipe
			replaced = true
			break
		}
	}
	if !replaced {
		mirror = append([]types.Recipe{recipe}, mirror...)
	}
	c.store.Set(recipesKey, mirror)
	return mirror
}

func (c *Client) removeFromMirror(recipeID string) {
	c.mirrorMu.Lock()
	defer c.mirrorMu.Unlock()
	mirror := c.loadMirrorLocked()
	kept := mirror[:0]
	for _, r := range mirror {
		if r.ID != recipeID {
			kept = append(kept, r)
		}
	}
	c.store.Set(recipesKey, kept)
}

func (c *Client) activeQueue() (*offline.Queue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.queue == nil {
		return nil, ErrNoSession
	}
	return c.queue, nil
}

// annotatePending marks recipes that still have a queued action.
func (c *Client) annotatePending(recipes []types.Recipe) []types.Recipe {
	pending := c.PendingRecipeIDs()
	if len(pending) == 0 {
		return recipes
	}
	for i := range recipes {
		recipes[i].Pending = pending[recipes[i].ID]
	}
	return recipes
}

func normalizeRecipes(recipes []types.Recipe) []types.Recipe {
	if recipes == nil {
		return []types.Recipe{}
	}
	for i := range recipes {
		normalizeRecipe(&recipes[i])
	}
	return recipes
}

// normalizeRecipe repairs shape anomalies from older cache layouts instead
// of rejecting them.
func normalizeRecipe(r *types.Recipe) {
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Steps == nil {
		r.Steps = []string{}
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
}
