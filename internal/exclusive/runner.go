// Package exclusive provides a keyed mutual-exclusion runner for async
// workflows.
//
// Calls under the same key are serialized FIFO; calls under different keys
// run fully concurrently. This is the sole ordering mechanism in the app:
// any operation that reads-then-writes shared state (the recipe cache, the
// render target, a single recipe's backend record) must go through a
// well-chosen key or risk lost updates from interleaved completions.
package exclusive

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrRunnerClosed is returned by Do after Stop has been called.
var ErrRunnerClosed = errors.New("exclusive: runner closed")

// entry is one link in a per-key chain. done is closed once the link has
// fully released its turn, which happens only after every earlier link has
// released theirs.
type entry struct {
	done chan struct{}
}

// Runner serializes functions per key.
type Runner struct {
	mu    sync.Mutex
	tails map[string]*entry

	closed uint32 // 0 → running, 1 → closed
	wg     sync.WaitGroup
}

// New constructs a ready-to-use Runner.
func New() *Runner {
	return &Runner{tails: make(map[string]*entry)}
}

// Do runs fn after every previously submitted call for the same key has
// settled, and returns fn's error to the caller. Return values travel
// through the closure.
//
//   - Calls for the same key execute strictly FIFO; fn never overlaps with
//     another fn under the same key.
//   - Calls for different keys are not ordered relative to each other.
//   - If ctx is cancelled while waiting for a predecessor, Do returns
//     ctx.Err() without running fn; the chain stays intact for successors.
//   - The chain entry for a key is dropped once its last call settles, so an
//     uncontended key costs no memory.
func (r *Runner) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	if atomic.LoadUint32(&r.closed) == 1 {
		return ErrRunnerClosed
	}

	r.mu.Lock()
	prev := r.tails[key]
	cur := &entry{done: make(chan struct{})}
	r.tails[key] = cur
	r.mu.Unlock()

	r.wg.Add(1)
	defer r.wg.Done()

	shard := shardLabel(key)
	if prev != nil {
		waitsTotal.WithLabelValues(shard).Inc()
		start := time.Now()
		select {
		case <-prev.done:
			waitDuration.WithLabelValues(shard).Observe(time.Since(start).Seconds())
		case <-ctx.Done():
			// Hand the turn over only after the predecessor settles, so a
			// successor chained on us cannot overtake it.
			go func() {
				<-prev.done
				r.release(key, cur)
			}()
			return ctx.Err()
		}
	}

	defer r.release(key, cur)

	runsTotal.WithLabelValues(shard).Inc()
	start := time.Now()
	err := fn(ctx)
	runDuration.WithLabelValues(shard).Observe(time.Since(start).Seconds())
	return err
}

// release closes cur's done channel and removes the chain entry when cur is
// still the tail (no successor arrived).
func (r *Runner) release(key string, cur *entry) {
	close(cur.done)
	r.mu.Lock()
	if r.tails[key] == cur {
		delete(r.tails, key)
	}
	r.mu.Unlock()
}

// Barrier waits until every call submitted for key before it has settled.
func (r *Runner) Barrier(ctx context.Context, key string) error {
	return r.Do(ctx, key, func(context.Context) error { return nil })
}

// Len reports the number of keys with an active chain, for diagnostics.
func (r *Runner) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tails)
}

// Stop rejects new calls and waits for in-flight ones to settle. It is
// idempotent and safe for concurrent use.
func (r *Runner) Stop() {
	if !atomic.CompareAndSwapUint32(&r.closed, 0, 1) {
		return
	}
	r.wg.Wait()
}

// Close lets Runner satisfy io.Closer.
func (r *Runner) Close() error {
	r.Stop()
	return nil
}
