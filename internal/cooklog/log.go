// Package cooklog keeps the per-recipe cooking log: an append-only list of
// cook events with optional rating and note, plus the aggregates the UI
// shows ("last cooked", "average rating").
package cooklog

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tinkeroneo/cook-go/internal/localstore"
	"github.com/tinkeroneo/cook-go/internal/types"
)

// ErrEventNotFound is returned when editing or deleting an unknown event.
var ErrEventNotFound = errors.New("cook event not found")

// Log provides access to the cook-event log, keyed by recipe id.
type Log struct {
	store *localstore.Store
	log   zerolog.Logger
	now   func() time.Time
}

// New binds the log to its store.
func New(store *localstore.Store, log zerolog.Logger) *Log {
	return &Log{
		store: store,
		log:   log.With().Str("component", "cooklog").Logger(),
		now:   time.Now,
	}
}

// SetClock injects the time source, for tests.
func (l *Log) SetClock(now func() time.Time) { l.now = now }

func key(recipeID string) string {
	return fmt.Sprintf("cooklog:%s", recipeID)
}

// ByRecipe returns the recipe's events in append order.
func (l *Log) ByRecipe(recipeID string) []types.CookEvent {
	var events []types.CookEvent
	l.store.Get(key(recipeID), &events)
	return events
}

// Add appends a cook event. A zero rating means unrated.
func (l *Log) Add(recipeID string, rating int, note string) (types.CookEvent, error) {
	if err := types.ValidateIDPresent(recipeID, "recipeId"); err != nil {
		return types.CookEvent{}, err
	}
	if err := types.ValidateRating(rating); err != nil {
		return types.CookEvent{}, err
	}
	ev := types.CookEvent{
		ID:       uuid.NewString(),
		RecipeID: recipeID,
		At:       l.now(),
		Rating:   rating,
		Note:     note,
	}
	events := append(l.ByRecipe(recipeID), ev)
	l.store.Set(key(recipeID), events)
	l.log.Debug().Str("recipe", recipeID).Int("rating", rating).Msg("cook event recorded")
	return ev, nil
}

// Update edits an event's rating and note in place.
func (l *Log) Update(recipeID, eventID string, rating int, note string) error {
	if err := types.ValidateRating(rating); err != nil {
		return err
	}
	events := l.ByRecipe(recipeID)
	for i := range events {
		if events[i].ID == eventID {
			events[i].Rating = rating
			events[i].Note = note
			l.store.Set(key(recipeID), events)
			return nil
		}
	}
	return ErrEventNotFound
}

// Delete removes an event from the log.
func (l *Log) Delete(recipeID, eventID string) error {
	events := l.ByRecipe(recipeID)
	for i := range events {
		if events[i].ID == eventID {
			events = append(events[:i], events[i+1:]...)
			l.store.Set(key(recipeID), events)
			return nil
		}
	}
	return ErrEventNotFound
}

// LastCooked returns the most recent event time, if any.
func (l *Log) LastCooked(recipeID string) (time.Time, bool) {
	var last time.Time
	found := false
	for _, ev := range l.ByRecipe(recipeID) {
		if ev.At.After(last) {
			last = ev.At
			found = true
		}
	}
	return last, found
}

// AverageRating averages the rated events; unrated ones are excluded.
func (l *Log) AverageRating(recipeID string) (float64, bool) {
	sum, n := 0, 0
	for _, ev := range l.ByRecipe(recipeID) {
		if ev.Rating > 0 {
			sum += ev.Rating
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}
