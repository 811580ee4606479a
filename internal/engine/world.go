package engine

// Entity is a stable opaque identity. It stays valid until Despawn and is
// never reused within one World.
type Entity uint64

// table is the store-side hook the World uses to discard attached data.
type table interface {
	discard(Entity)
}

// World owns entity lifecycle and the deferred command queue. All
// mutation happens on the tick goroutine; World is not safe for
// concurrent use.
type World struct {
	nextID           Entity
	alive            map[Entity]struct{}
	tables           []table
	despawnObservers []func(Entity)
	deferred         []func()
}

func NewWorld() *World {
	return &World{
		alive: make(map[Entity]struct{}),
	}
}

// Spawn allocates a fresh entity.
func (w *World) Spawn() Entity {
	w.nextID++
	e := w.nextID
	w.alive[e] = struct{}{}
	return e
}

// Alive reports whether the entity has been spawned and not yet despawned.
func (w *World) Alive(e Entity) bool {
	_, ok := w.alive[e]
	return ok
}

// OnDespawn registers an observer that runs when an entity is despawned,
// before any attached data is discarded. Observers can still read every
// store the entity has data in.
func (w *World) OnDespawn(fn func(Entity)) {
	w.despawnObservers = append(w.despawnObservers, fn)
}

// Despawn destroys an entity: observers fire first with data intact, then
// every registered store drops the entity's data (firing remove hooks).
func (w *World) Despawn(e Entity) {
	if _, ok := w.alive[e]; !ok {
		return
	}
	delete(w.alive, e)
	for _, fn := range w.despawnObservers {
		fn(e)
	}
	for _, t := range w.tables {
		t.discard(e)
	}
}

// Defer queues a mutation to apply after the current pass, before the
// next pass reads.
func (w *World) Defer(fn func()) {
	w.deferred = append(w.deferred, fn)
}

// Flush applies all queued commands in order. Commands queued while
// flushing run in the same flush.
func (w *World) Flush() {
	for len(w.deferred) > 0 {
		queue := w.deferred
		w.deferred = nil
		for _, fn := range queue {
			fn()
		}
	}
}

func (w *World) register(t table) {
	w.tables = append(w.tables, t)
}
