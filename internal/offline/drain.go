package offline

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	apierrors "github.com/tinkeroneo/cook-go/internal/errors"
	"github.com/tinkeroneo/cook-go/internal/types"
)

// Dispatcher applies one queued action against the backend.
type Dispatcher interface {
	Apply(ctx context.Context, action types.OfflineAction) error
}

// DispatcherFunc adapts a closure to a Dispatcher.
type DispatcherFunc func(ctx context.Context, action types.OfflineAction) error

// Apply implements Dispatcher.
func (f DispatcherFunc) Apply(ctx context.Context, action types.OfflineAction) error {
	return f(ctx, action)
}

// Drain compacts the queue, then replays the remaining actions in order.
//
// Each successfully applied action is removed immediately, so a partial
// drain never re-applies work. A recoverable failure (after short backoff
// retries) stops the drain and leaves the rest of the queue intact for the
// next attempt; continuing past it would apply actions out of order. An
// irrecoverable failure (4xx) is dropped with a log instead, so one poisoned
// action cannot wedge the queue forever.
//
// Returns the number of actions replayed and the error that stopped the
// drain, if any.
func (q *Queue) Drain(ctx context.Context, d Dispatcher) (int, error) {
	actions := q.Compact()
	replayed := 0
	for len(actions) > 0 {
		if err := ctx.Err(); err != nil {
			return replayed, err
		}
		action := actions[0]

		err := q.applyWithRetry(ctx, d, action)
		if err != nil && !apierrors.IsIrrecoverable(err) {
			drainStoppedTotal.Inc()
			q.log.Warn().Err(err).Str("recipe", action.RecipeID).Int("remaining", len(actions)).Msg("drain stopped")
			return replayed, err
		}
		if err != nil {
			droppedTotal.Inc()
			q.log.Error().Err(err).Str("recipe", action.RecipeID).Msg("dropping irrecoverable action")
		} else {
			drainedTotal.WithLabelValues(string(action.Kind)).Inc()
			replayed++
		}

		actions = actions[1:]
		q.remove(action.ID)
	}
	return replayed, nil
}

// SetBackOffFactory overrides the per-action retry policy used by Drain.
func (q *Queue) SetBackOffFactory(f func() backoff.BackOff) {
	q.newBackOff = f
}

func defaultBackOff() backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 2 * time.Second
	exp.MaxElapsedTime = 10 * time.Second
	return exp
}

// applyWithRetry gives each action a few quick retries before the drain
// gives up on transient failures.
func (q *Queue) applyWithRetry(ctx context.Context, d Dispatcher, action types.OfflineAction) error {
	bo := q.newBackOff()
	return backoff.Retry(func() error {
		err := d.Apply(ctx, action)
		if err != nil && apierrors.IsIrrecoverable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(bo, ctx))
}
