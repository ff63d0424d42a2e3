// Package timers maintains the set of concurrently running kitchen
// countdowns.
//
// A timer runs until its absolute deadline passes, then rings (overdue,
// unacknowledged) until it is dismissed or extended — an overdue deadline
// never clears itself. The full set is persisted after every mutation, so a
// reload resumes in-flight countdowns; time elapsed while the app was
// closed counts against the deadline.
package timers

import (
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tinkeroneo/cook-go/internal/localstore"
	"github.com/tinkeroneo/cook-go/internal/types"
)

// ErrTimerNotFound is returned for operations on unknown timer ids.
var ErrTimerNotFound = errors.New("timer not found")

const storeKey = "timers"

// Snapshot is one timer's render state.
type Snapshot struct {
	Timer        types.Timer
	RemainingSec int // negative or zero once overdue
}

// Option configures a Manager during construction.
type Option func(*Manager)

// WithInterval overrides the ~1s tick interval.
func WithInterval(d time.Duration) Option {
	return func(m *Manager) { m.interval = d }
}

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// OnRender registers the callback invoked with the sorted snapshot on every
// tick and after every mutation.
func OnRender(fn func([]Snapshot)) Option {
	return func(m *Manager) { m.onRender = fn }
}

// OnFire registers the callback invoked exactly once when a timer crosses
// from running to overdue. Sustained ringing is the audio layer's job; the
// manager does not re-fire.
func OnFire(fn func(types.Timer)) Option {
	return func(m *Manager) { m.onFire = fn }
}

// Manager owns the timer set and its tick loop.
type Manager struct {
	mu     sync.Mutex
	timers map[string]*types.Timer

	store    *localstore.Store
	log      zerolog.Logger
	now      func() time.Time
	interval time.Duration
	onRender func([]Snapshot)
	onFire   func(types.Timer)

	done    chan struct{}
	stopped sync.Once
	wg      sync.WaitGroup
}

// New builds a Manager and restores any persisted timers.
func New(store *localstore.Store, log zerolog.Logger, opts ...Option) *Manager {
	m := &Manager{
		timers:   make(map[string]*types.Timer),
		store:    store,
		log:      log.With().Str("component", "timers").Logger(),
		now:      time.Now,
		interval: time.Second,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	var persisted map[string]types.Timer
	if store.Get(storeKey, &persisted) {
		for id, t := range persisted {
			timer := t
			m.timers[id] = &timer
		}
	}
	return m
}

// Start launches the periodic tick loop. Safe to skip entirely when the
// caller drives Tick manually.
func (m *Manager) Start() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Tick()
			case <-m.done:
				return
			}
		}
	}()
}

// Stop terminates the tick loop. Idempotent.
func (m *Manager) Stop() {
	m.stopped.Do(func() { close(m.done) })
	m.wg.Wait()
}

// Add starts a countdown of durationSec seconds and returns it.
func (m *Manager) Add(title string, duration time.Duration, ownerRecipeID string) types.Timer {
	now := m.now()
	t := types.Timer{
		ID:            uuid.NewString(),
		Title:         title,
		OwnerRecipeID: ownerRecipeID,
		CreatedAt:     now,
		EndsAt:        now.Add(duration),
	}

	m.mu.Lock()
	m.timers[t.ID] = &t
	m.persistLocked()
	m.mu.Unlock()

	timersStarted.Inc()
	m.log.Debug().Str("timer", t.ID).Str("title", title).Dur("duration", duration).Msg("timer started")
	m.renderNow()
	return t
}

// Extend shifts the deadline by delta (negative delta shortens).
//
// The shift is anchored to max(now, endsAt): extending a timer that is
// already overdue restarts the countdown from the present moment instead of
// compounding onto the stale deadline. Dismissed/beeped flags reset, so an
// extended ringing timer returns to the running state.
func (m *Manager) Extend(id string, delta time.Duration) error {
	m.mu.Lock()
	t, ok := m.timers[id]
	if !ok {
		m.mu.Unlock()
		return ErrTimerNotFound
	}
	anchor := m.now()
	if t.EndsAt.After(anchor) {
		anchor = t.EndsAt
	}
	t.EndsAt = anchor.Add(delta)
	t.Dismissed = false
	t.Beeped = false
	m.persistLocked()
	m.mu.Unlock()

	m.renderNow()
	return nil
}

// Shorten is Extend with a negated delta.
func (m *Manager) Shorten(id string, delta time.Duration) error {
	return m.Extend(id, -delta)
}

// Dismiss acknowledges a timer; it leaves the active list for good.
func (m *Manager) Dismiss(id string) error {
	m.mu.Lock()
	t, ok := m.timers[id]
	if !ok {
		m.mu.Unlock()
		return ErrTimerNotFound
	}
	t.Dismissed = true
	m.persistLocked()
	m.mu.Unlock()

	m.renderNow()
	return nil
}

// Remove stops and deletes the timer.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	if _, ok := m.timers[id]; !ok {
		m.mu.Unlock()
		return ErrTimerNotFound
	}
	delete(m.timers, id)
	m.persistLocked()
	m.mu.Unlock()

	m.renderNow()
	return nil
}

// Active returns the non-dismissed timers sorted soonest-first; overdue
// timers (zero or negative remaining) sort ahead of running ones.
func (m *Manager) Active() []Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeLocked()
}

func (m *Manager) activeLocked() []Snapshot {
	now := m.now()
	var out []Snapshot
	for _, t := range m.timers {
		if t.Dismissed {
			continue
		}
		out = append(out, Snapshot{Timer: *t, RemainingSec: remainingSec(now, t.EndsAt)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RemainingSec != out[j].RemainingSec {
			return out[i].RemainingSec < out[j].RemainingSec
		}
		return out[i].Timer.CreatedAt.Before(out[j].Timer.CreatedAt)
	})
	return out
}

// Tick recomputes remaining time, fires newly overdue timers once each, and
// invokes the render callback with the sorted snapshot.
func (m *Manager) Tick() {
	m.mu.Lock()
	var fired []types.Timer
	now := m.now()
	for _, t := range m.timers {
		if t.Dismissed || t.Beeped {
			continue
		}
		if remainingSec(now, t.EndsAt) <= 0 {
			t.Beeped = true
			fired = append(fired, *t)
		}
	}
	if len(fired) > 0 {
		m.persistLocked()
	}
	snapshot := m.activeLocked()
	m.mu.Unlock()

	for _, t := range fired {
		timersFired.Inc()
		m.log.Info().Str("timer", t.ID).Str("title", t.Title).Msg("timer overdue")
		if m.onFire != nil {
			m.onFire(t)
		}
	}
	if m.onRender != nil {
		m.onRender(snapshot)
	}
	activeTimers.Set(float64(len(snapshot)))
}

// renderNow pushes a fresh snapshot after a mutation without waiting for
// the next tick.
func (m *Manager) renderNow() {
	if m.onRender == nil {
		return
	}
	m.onRender(m.Active())
}

func (m *Manager) persistLocked() {
	flat := make(map[string]types.Timer, len(m.timers))
	for id, t := range m.timers {
		flat[id] = *t
	}
	m.store.Set(storeKey, flat)
}

func remainingSec(now time.Time, endsAt time.Time) int {
	return int(math.Ceil(endsAt.Sub(now).Seconds()))
}
