package task

import (
	"context"
	"testing"
	"time"

	"voxelmesh/internal/engine"
)

// pollUntil polls the runner until cond holds or the deadline passes.
func pollUntil(t *testing.T, w *engine.World, r *Runner[int], cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		r.Poll()
		w.Flush()
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestResultInstalledOnOwner(t *testing.T) {
	w := engine.NewWorld()
	out := engine.NewStore[int](w)
	r := NewRunner(w, out, 2, 16)
	defer r.Close()

	e := w.Spawn()
	r.Spawn(e, func(ctx context.Context) int { return 7 })
	pollUntil(t, w, r, func() bool { return out.Has(e) })

	if v, _ := out.Get(e); v != 7 {
		t.Fatalf("installed %d, want 7", v)
	}
	if r.InFlight(e) || r.Pending() != 0 {
		t.Fatal("registry not empty after result installed")
	}
}

func TestRespawnReplacesInFlightTask(t *testing.T) {
	w := engine.NewWorld()
	out := engine.NewStore[int](w)
	r := NewRunner(w, out, 1, 16)
	defer r.Close()

	installs := 0
	out.OnInsert(func(engine.Entity, int) { installs++ })
	out.OnReplace(func(engine.Entity, int, int) { installs++ })

	e := w.Spawn()
	release := make(chan struct{})
	r.Spawn(e, func(ctx context.Context) int {
		<-release
		return 1
	})
	r.Spawn(e, func(ctx context.Context) int { return 2 })
	close(release)

	pollUntil(t, w, r, func() bool { return out.Has(e) })
	// Give the first, replaced computation time to finish as well.
	time.Sleep(20 * time.Millisecond)
	r.Poll()
	w.Flush()

	if v, _ := out.Get(e); v != 2 {
		t.Fatalf("installed %d, want result of the second task", v)
	}
	if installs != 1 {
		t.Fatalf("%d installs, want exactly 1", installs)
	}
}

func TestDespawnCancelsAndDiscards(t *testing.T) {
	w := engine.NewWorld()
	out := engine.NewStore[int](w)
	r := NewRunner(w, out, 1, 16)
	defer r.Close()

	e := w.Spawn()
	started := make(chan struct{})
	release := make(chan struct{})
	cancelled := make(chan struct{})
	r.Spawn(e, func(ctx context.Context) int {
		close(started)
		select {
		case <-release:
		case <-ctx.Done():
			close(cancelled)
		}
		return 9
	})
	<-started
	w.Despawn(e)
	if r.Pending() != 0 {
		t.Fatal("registry entry survived owner despawn")
	}
	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		close(release)
		t.Fatal("computation context not cancelled on despawn")
	}

	// Even if a result arrives late it must never be installed.
	for i := 0; i < 50; i++ {
		r.Poll()
		w.Flush()
		time.Sleep(time.Millisecond)
	}
	if out.Has(e) {
		t.Fatal("result installed for destroyed owner")
	}
}

func TestSpawnBlocksWhenQueueFull(t *testing.T) {
	w := engine.NewWorld()
	out := engine.NewStore[int](w)
	r := NewRunner(w, out, 1, 1)
	defer r.Close()

	gate := make(chan struct{})
	busy := w.Spawn()
	r.Spawn(busy, func(ctx context.Context) int { <-gate; return 1 })
	queued := w.Spawn()
	r.Spawn(queued, func(ctx context.Context) int { return 2 })

	// Worker and queue slot are both occupied; the next spawn must wait
	// for a slot instead of starting work outside the pool.
	third := w.Spawn()
	sent := make(chan struct{})
	go func() {
		r.Spawn(third, func(ctx context.Context) int { return 3 })
		close(sent)
	}()
	select {
	case <-sent:
		t.Fatal("spawn did not block on a full queue")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)
	<-sent
	pollUntil(t, w, r, func() bool {
		return out.Has(busy) && out.Has(queued) && out.Has(third)
	})
}

func TestContextSnapshotIndependence(t *testing.T) {
	// A task must see the inputs captured at spawn, not later state.
	w := engine.NewWorld()
	out := engine.NewStore[int](w)
	r := NewRunner(w, out, 1, 16)
	defer r.Close()

	e := w.Spawn()
	input := 10
	captured := input
	r.Spawn(e, func(ctx context.Context) int { return captured * 2 })
	input = 99 // mutation after spawn must not leak into the task

	pollUntil(t, w, r, func() bool { return out.Has(e) })
	if v, _ := out.Get(e); v != 20 {
		t.Fatalf("task observed post-spawn mutation: got %d, want 20", v)
	}
}
