package chunk

import (
	"log"

	"voxelmesh/internal/engine"
	"voxelmesh/internal/spatial"
)

// Cloneable is the snapshot capability a tracked datum type must provide.
type Cloneable[T any] interface {
	Clone() T
}

// neighborUpdate says "the chunk at pos now publishes value"; a nil value
// means cleared. Updates are pure slot overwrites, so they commute across
// different source chunks; within a pass they apply in FIFO order.
type neighborUpdate[T any] struct {
	pos   spatial.ChunkCoord
	value *T
}

// Tracker maintains one Neighborhood[T] per chunk from change
// notifications on a source store. Publishing takes an immutable snapshot
// of the source value and distributes the shared reference; a later
// republish distributes a fresh snapshot, it never mutates one already
// handed out.
type Tracker[T Cloneable[T]] struct {
	world     *engine.World
	index     *Index
	positions *engine.Store[spatial.ChunkCoord]
	snapshots *engine.Store[*T]
	caches    *engine.Store[Neighborhood[T]]
	fulls     *engine.Store[FullNeighborhood[T]]

	events  []neighborUpdate[T]
	touched map[engine.Entity]struct{}
}

// NewTracker wires a tracker to a source store. Source publish/removal is
// observed through store hooks; snapshot attachment goes through the
// world's deferred command queue so it lands between passes.
func NewTracker[T Cloneable[T]](
	w *engine.World,
	ix *Index,
	positions *engine.Store[spatial.ChunkCoord],
	src *engine.Store[T],
) *Tracker[T] {
	t := &Tracker[T]{
		world:     w,
		index:     ix,
		positions: positions,
		snapshots: engine.NewStore[*T](w),
		caches:    engine.NewStore[Neighborhood[T]](w),
		fulls:     engine.NewStore[FullNeighborhood[T]](w),
		touched:   make(map[engine.Entity]struct{}),
	}

	publish := func(e engine.Entity, v T) {
		w.Defer(func() {
			if !w.Alive(e) {
				return
			}
			snap := v.Clone()
			t.snapshots.Set(e, &snap)
		})
	}
	src.OnInsert(publish)
	src.OnReplace(func(e engine.Entity, _, next T) { publish(e, next) })
	src.OnRemove(func(e engine.Entity, _ T) {
		if !w.Alive(e) {
			return // despawn path, handled by the observer below
		}
		w.Defer(func() { t.snapshots.Remove(e) })
	})

	t.snapshots.OnInsert(func(e engine.Entity, v *T) { t.enqueue(e, v) })
	t.snapshots.OnReplace(func(e engine.Entity, _, next *T) { t.enqueue(e, next) })
	t.snapshots.OnRemove(func(e engine.Entity, _ *T) {
		if !w.Alive(e) {
			return
		}
		t.enqueue(e, nil)
	})

	// Destruction notice must capture the position before any attached
	// data is discarded.
	w.OnDespawn(func(e engine.Entity) {
		if !t.snapshots.Has(e) {
			return
		}
		t.enqueue(e, nil)
	})

	t.caches.OnInsert(func(e engine.Entity, _ Neighborhood[T]) { t.touched[e] = struct{}{} })
	t.caches.OnReplace(func(e engine.Entity, _, _ Neighborhood[T]) { t.touched[e] = struct{}{} })
	t.caches.OnRemove(func(e engine.Entity, _ Neighborhood[T]) { t.touched[e] = struct{}{} })

	return t
}

// Snapshots is the store of published shared references, keyed by chunk.
func (t *Tracker[T]) Snapshots() *engine.Store[*T] { return t.snapshots }

// Caches is the store of per-chunk neighbor caches.
func (t *Tracker[T]) Caches() *engine.Store[Neighborhood[T]] { return t.caches }

// Fulls is the store of completeness views; an entry exists iff the
// chunk's cache currently has all 27 slots populated.
func (t *Tracker[T]) Fulls() *engine.Store[FullNeighborhood[T]] { return t.fulls }

func (t *Tracker[T]) enqueue(e engine.Entity, v *T) {
	pos, ok := t.index.Position(e)
	if !ok {
		log.Printf("chunk: no indexed position for entity %d, neighbor update dropped", e)
		return
	}
	t.events = append(t.events, neighborUpdate[T]{pos: pos, value: v})
}

// Run is the tracker's per-tick pass: initialize caches for new chunks,
// apply queued neighbor updates, then refresh completeness views for
// every cache touched this pass.
func (t *Tracker[T]) Run() {
	t.initCaches()
	t.propagate()
	t.refreshFull()
}

// initCaches gives every chunk that publishes a datum and has a position
// but no cache yet an initial cache populated from the index.
func (t *Tracker[T]) initCaches() {
	type pending struct {
		e   engine.Entity
		pos spatial.ChunkCoord
	}
	var fresh []pending
	t.snapshots.Each(func(e engine.Entity, _ *T) {
		if t.caches.Has(e) {
			return
		}
		pos, ok := t.positions.Get(e)
		if !ok {
			return
		}
		fresh = append(fresh, pending{e: e, pos: pos})
	})
	for _, p := range fresh {
		var n Neighborhood[T]
		for _, off := range spatial.CubeOffsets {
			ne, ok := t.index.Entity(p.pos.Add(off))
			if !ok {
				continue
			}
			snap, ok := t.snapshots.Get(ne)
			if !ok {
				continue
			}
			n.SetSlot(off.X, off.Y, off.Z, snap)
		}
		t.caches.Set(p.e, n)
	}
}

// propagate applies queued updates: the new value of the chunk at pos is
// written into the inverse-offset slot of all 27 relative neighbors that
// currently hold a cache.
func (t *Tracker[T]) propagate() {
	for len(t.events) > 0 {
		ev := t.events[0]
		t.events = t.events[1:]
		for _, off := range spatial.CubeOffsets {
			ne, ok := t.index.Entity(ev.pos.Add(off))
			if !ok {
				continue
			}
			cache, ok := t.caches.Get(ne)
			if !ok {
				continue
			}
			inv := off.Neg()
			cache.SetSlot(inv.X, inv.Y, inv.Z, ev.value)
			t.caches.Set(ne, cache)
		}
	}
}

// refreshFull assigns the FullNeighborhood view when a touched cache has
// all 27 slots and revokes it the moment any slot is empty again.
func (t *Tracker[T]) refreshFull() {
	for e := range t.touched {
		delete(t.touched, e)
		cache, ok := t.caches.Get(e)
		if !ok {
			t.fulls.Remove(e)
			continue
		}
		if full, ok := cache.Full(); ok {
			t.fulls.Set(e, full)
		} else {
			t.fulls.Remove(e)
		}
	}
}
