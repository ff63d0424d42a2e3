// Package offline records mutations that could not be (or should not yet
// be) sent to the backend, for replay once connectivity returns.
//
// The queue is persisted under a key scoped by (userID, spaceID) so that
// switching accounts or spaces never mixes pending writes across scopes.
package offline

import (
	"fmt"
	"sort"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tinkeroneo/cook-go/internal/localstore"
	"github.com/tinkeroneo/cook-go/internal/types"
)

// Queue is the per-(user,space) offline action queue.
//
// Every mutation is a load-modify-save cycle on the persisted list, so all
// of them hold mu; without it two concurrent enqueues can overwrite each
// other's save and silently drop a pending action.
type Queue struct {
	store   *localstore.Store
	userID  string
	spaceID string
	log     zerolog.Logger

	mu         sync.Mutex
	newBackOff func() backoff.BackOff
}

// New binds a queue to its storage scope.
func New(store *localstore.Store, userID, spaceID string, log zerolog.Logger) *Queue {
	return &Queue{
		store:      store,
		userID:     userID,
		spaceID:    spaceID,
		log:        log.With().Str("component", "offline").Str("space", spaceID).Logger(),
		newBackOff: defaultBackOff,
	}
}

func (q *Queue) key() string {
	return fmt.Sprintf("offline_queue:%s:%s", q.userID, q.spaceID)
}

// Actions returns the queued actions in storage order.
func (q *Queue) Actions() []types.OfflineAction {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.actionsLocked()
}

func (q *Queue) actionsLocked() []types.OfflineAction {
	var actions []types.OfflineAction
	q.store.Get(q.key(), &actions)
	return actions
}

func (q *Queue) saveLocked(actions []types.OfflineAction) {
	q.store.Set(q.key(), actions)
	queueDepth.Set(float64(len(actions)))
}

// Enqueue appends the action and returns the new queue length. A missing ID
// gets a fresh UUID; a zero TS gets the current wall clock in epoch ms.
func (q *Queue) Enqueue(action types.OfflineAction) int {
	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	if action.TS == 0 {
		action.TS = time.Now().UnixMilli()
	}
	q.mu.Lock()
	actions := append(q.actionsLocked(), action)
	q.saveLocked(actions)
	q.mu.Unlock()
	enqueuedTotal.WithLabelValues(string(action.Kind)).Inc()
	q.log.Debug().Str("kind", string(action.Kind)).Str("recipe", action.RecipeID).Int("depth", len(actions)).Msg("action queued")
	return len(actions)
}

// Compact collapses the queue to at most one effective action per recipe
// (latest timestamp wins, ties broken in favor of the later position) and
// persists the result. Non-recipe actions keep their original relative
// order and come first; the surviving recipe actions follow, sorted
// ascending by timestamp.
func (q *Queue) Compact() []types.OfflineAction {
	q.mu.Lock()
	defer q.mu.Unlock()
	compacted := CompactActions(q.actionsLocked())
	q.saveLocked(compacted)
	return compacted
}

// CompactActions is the pure compaction step, exposed for direct use.
func CompactActions(actions []types.OfflineAction) []types.OfflineAction {
	var others []types.OfflineAction
	latest := make(map[string]types.OfflineAction)
	for _, a := range actions {
		if isRecipeAction(a) {
			if cur, ok := latest[a.RecipeID]; !ok || a.TS >= cur.TS {
				latest[a.RecipeID] = a
			}
			continue
		}
		others = append(others, a)
	}

	recipeActions := make([]types.OfflineAction, 0, len(latest))
	for _, a := range latest {
		recipeActions = append(recipeActions, a)
	}
	sort.Slice(recipeActions, func(i, j int) bool {
		if recipeActions[i].TS != recipeActions[j].TS {
			return recipeActions[i].TS < recipeActions[j].TS
		}
		return recipeActions[i].RecipeID < recipeActions[j].RecipeID
	})
	return append(others, recipeActions...)
}

func isRecipeAction(a types.OfflineAction) bool {
	return (a.Kind == types.ActionRecipeUpsert || a.Kind == types.ActionRecipeDelete) && a.RecipeID != ""
}

// PendingRecipeIDs returns the set of recipe ids with an outstanding
// action, used to render a "pending sync" badge.
func (q *Queue) PendingRecipeIDs() map[string]bool {
	pending := make(map[string]bool)
	for _, a := range q.Actions() {
		if isRecipeAction(a) {
			pending[a.RecipeID] = true
		}
	}
	return pending
}

// Len reports the current queue depth.
func (q *Queue) Len() int {
	return len(q.Actions())
}

// Clear drops every queued action for this scope.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.store.Delete(q.key())
	queueDepth.Set(0)
}

// remove deletes one settled action by id. The rest of the persisted list
// is kept as-is, so anything enqueued after a drain snapshot was taken
// survives the drain.
func (q *Queue) remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	actions := q.actionsLocked()
	kept := actions[:0]
	for _, a := range actions {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	q.saveLocked(kept)
}
