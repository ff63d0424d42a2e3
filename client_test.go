package cook

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseIsIdempotent(t *testing.T) {
	c, err := NewLocal(WithStorePath(":memory:"))
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err = c.GetAll(context.Background())
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestNewPanicsOnMissingCredentials(t *testing.T) {
	assert.Panics(t, func() { _, _ = New("", "key") })
	assert.Panics(t, func() { _, _ = New("http://localhost", "") })
}

func TestSetSessionScopesQueue(t *testing.T) {
	c := newLocalClient(t, ":memory:")

	_, err := c.QueueUpsert(sample("r1", "Brot"))
	require.NoError(t, err)
	assert.Len(t, c.PendingRecipeIDs(), 1)

	// Another identity sees an empty queue.
	c.SetSession("u2", "space-2")
	assert.Empty(t, c.PendingRecipeIDs())

	// The first identity's queue is still there when it returns.
	c.SetSession("u1", "space-1")
	assert.Len(t, c.PendingRecipeIDs(), 1)

	// Clearing the session drops queue access entirely.
	c.SetSession("", "")
	_, err = c.QueueUpsert(sample("r2", "Kuchen"))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestTimerOptionsWireThrough(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	var fired []Timer
	c, err := NewLocal(
		WithStorePath(":memory:"),
		WithTimerOptions(
			WithTimerClock(func() time.Time { return now }),
			OnTimerFire(func(t Timer) { fired = append(fired, t) }),
		),
	)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	timer := c.Timers().Add("Nudeln", 90*time.Second, "r1")
	active := c.Timers().Active()
	require.Len(t, active, 1)
	assert.Equal(t, 90, active[0].RemainingSec)

	now = now.Add(91 * time.Second)
	c.Timers().Tick()
	require.Len(t, fired, 1)
	assert.Equal(t, timer.ID, fired[0].ID)
}

func TestRunExclusiveSerializesSameKey(t *testing.T) {
	c := newLocalClient(t, ":memory:")

	running := false
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			_ = c.RunExclusive(context.Background(), "render", func(context.Context) error {
				if running {
					t.Error("overlapping execution under one key")
				}
				running = true
				defer func() { running = false }()
				return nil
			})
			done <- struct{}{}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}
