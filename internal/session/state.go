// Package session persists the small per-recipe cooking-session state: the
// step "done" checklist, the checked-off ingredient lines, and UI
// preferences. Each lives under its own key; no cross-key transactionality
// is assumed.
package session

import (
	"fmt"

	"github.com/tinkeroneo/cook-go/internal/localstore"
)

// State wraps the namespaced session keys.
type State struct {
	store *localstore.Store
}

// New binds session state to its store.
func New(store *localstore.Store) *State {
	return &State{store: store}
}

func stepsKey(recipeID string) string       { return fmt.Sprintf("steps_done:%s", recipeID) }
func ingredientsKey(recipeID string) string { return fmt.Sprintf("ingredients_used:%s", recipeID) }
func prefsKey(name string) string           { return fmt.Sprintf("prefs:%s", name) }

// DoneSteps returns the set of completed step indices for the recipe.
func (s *State) DoneSteps(recipeID string) map[int]bool {
	done := make(map[int]bool)
	s.store.Get(stepsKey(recipeID), &done)
	return done
}

// MarkStepDone records or clears a step's completion.
func (s *State) MarkStepDone(recipeID string, step int, done bool) {
	steps := s.DoneSteps(recipeID)
	if done {
		steps[step] = true
	} else {
		delete(steps, step)
	}
	s.store.Set(stepsKey(recipeID), steps)
}

// IsStepDone reports a single step's completion.
func (s *State) IsStepDone(recipeID string, step int) bool {
	return s.DoneSteps(recipeID)[step]
}

// ResetSteps clears the recipe's checklist, e.g. when cooking it again.
func (s *State) ResetSteps(recipeID string) {
	s.store.Delete(stepsKey(recipeID))
}

// UsedIngredients returns the checked-off ingredient lines for the recipe.
func (s *State) UsedIngredients(recipeID string) map[string]bool {
	used := make(map[string]bool)
	s.store.Get(ingredientsKey(recipeID), &used)
	return used
}

// MarkIngredientUsed records or clears an ingredient line's check mark.
func (s *State) MarkIngredientUsed(recipeID, line string, used bool) {
	lines := s.UsedIngredients(recipeID)
	if used {
		lines[line] = true
	} else {
		delete(lines, line)
	}
	s.store.Set(ingredientsKey(recipeID), lines)
}

// ResetIngredients clears the recipe's ingredient check marks.
func (s *State) ResetIngredients(recipeID string) {
	s.store.Delete(ingredientsKey(recipeID))
}

// SetPreference stores a UI preference blob under name.
func (s *State) SetPreference(name string, v any) {
	s.store.Set(prefsKey(name), v)
}

// GetPreference loads a preference into v, reporting whether it was set.
func (s *State) GetPreference(name string, v any) bool {
	return s.store.Get(prefsKey(name), v)
}
