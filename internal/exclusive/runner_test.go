package exclusive

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Two calls under the same key must not overlap: the second fn may not start
// before the first has settled.
func TestDo_SerializesSameKey(t *testing.T) {
	r := New()
	defer r.Stop()

	firstDone := make(chan struct{})
	secondStarted := make(chan struct{})
	var firstSettled int32

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = r.Do(context.Background(), "k", func(context.Context) error {
			<-firstDone
			atomic.StoreInt32(&firstSettled, 1)
			return nil
		})
	}()
	// Give the first call time to take the tail.
	time.Sleep(20 * time.Millisecond)
	go func() {
		defer wg.Done()
		_ = r.Do(context.Background(), "k", func(context.Context) error {
			close(secondStarted)
			return nil
		})
	}()

	select {
	case <-secondStarted:
		t.Fatal("second call started before first settled")
	case <-time.After(50 * time.Millisecond):
	}

	close(firstDone)
	select {
	case <-secondStarted:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("second call never ran")
	}
	if atomic.LoadInt32(&firstSettled) != 1 {
		t.Fatal("second call observed before first settled")
	}
	wg.Wait()
}

// Calls under different keys may overlap in execution.
func TestDo_DifferentKeysOverlap(t *testing.T) {
	r := New()
	defer r.Stop()

	bothRunning := make(chan struct{})
	var running int32
	probe := func(context.Context) error {
		if atomic.AddInt32(&running, 1) == 2 {
			close(bothRunning)
		}
		<-bothRunning
		return nil
	}

	var wg sync.WaitGroup
	for _, key := range []string{"k1", "k2"} {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			_ = r.Do(context.Background(), k, probe)
		}(key)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("keys did not run concurrently")
	}
}

// The runner propagates fn's error to the caller.
func TestDo_PropagatesError(t *testing.T) {
	r := New()
	defer r.Stop()

	want := errors.New("boom")
	if got := r.Do(context.Background(), "k", func(context.Context) error { return want }); !errors.Is(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// A key with no contention leaves no chain entry behind.
func TestDo_CleansUpTail(t *testing.T) {
	r := New()
	defer r.Stop()

	for i := 0; i < 3; i++ {
		if err := r.Do(context.Background(), "k", func(context.Context) error { return nil }); err != nil {
			t.Fatalf("do: %v", err)
		}
	}
	if n := r.Len(); n != 0 {
		t.Fatalf("expected empty tail map, got %d entries", n)
	}
}

// Cancelling a waiting call skips its fn but keeps FIFO intact for later
// calls on the same key.
func TestDo_CancelWhileWaiting(t *testing.T) {
	r := New()
	defer r.Stop()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = r.Do(context.Background(), "k", func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancelled := make(chan error, 1)
	var skippedRan int32
	go func() {
		cancelled <- r.Do(ctx, "k", func(context.Context) error {
			atomic.StoreInt32(&skippedRan, 1)
			return nil
		})
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-cancelled:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("got %v, want context.Canceled", err)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("cancelled call did not return")
	}
	if atomic.LoadInt32(&skippedRan) == 1 {
		t.Fatal("cancelled fn should not have run")
	}

	// A third call must still run once the first releases.
	close(release)
	ran := make(chan struct{})
	go func() {
		_ = r.Do(context.Background(), "k", func(context.Context) error {
			close(ran)
			return nil
		})
	}()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("successor never ran after cancelled predecessor")
	}
}

func TestBarrier_FlushesKey(t *testing.T) {
	r := New()
	defer r.Stop()

	var order []int
	var mu sync.Mutex
	for i := 0; i < 3; i++ {
		i := i
		go func() {
			_ = r.Do(context.Background(), "k", func(context.Context) error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}()
		time.Sleep(10 * time.Millisecond)
	}
	if err := r.Barrier(context.Background(), "k"); err != nil {
		t.Fatalf("barrier: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(order) != 3 {
		t.Fatalf("barrier returned before all calls settled: %v", order)
	}
}

func TestStop_RejectsNewCalls(t *testing.T) {
	r := New()
	r.Stop()
	if err := r.Do(context.Background(), "k", func(context.Context) error { return nil }); !errors.Is(err, ErrRunnerClosed) {
		t.Fatalf("got %v, want ErrRunnerClosed", err)
	}
	// Stop is idempotent.
	r.Stop()
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
