package mesh

import (
	"context"

	"voxelmesh/internal/engine"
	"voxelmesh/internal/task"
)

// Mesher schedules a background mesh derivation whenever a chunk's
// block-volume neighbor cache changes and installs the finished quad list
// on the chunk. It also keeps the running total of installed quads for
// the rendering collaborator.
type Mesher struct {
	world     *engine.World
	runner    *task.Runner[Quads]
	caches    *engine.Store[Volumes]
	quads     *engine.Store[Quads]
	dirty     map[engine.Entity]struct{}
	quadCount int
}

// NewMesher wires the mesher to the block-volume cache store.
func NewMesher(w *engine.World, caches *engine.Store[Volumes], workers, queueSize int) *Mesher {
	m := &Mesher{
		world:  w,
		caches: caches,
		quads:  engine.NewStore[Quads](w),
		dirty:  make(map[engine.Entity]struct{}),
	}
	m.runner = task.NewRunner(w, m.quads, workers, queueSize)

	caches.OnInsert(func(e engine.Entity, _ Volumes) { m.dirty[e] = struct{}{} })
	caches.OnReplace(func(e engine.Entity, _, _ Volumes) { m.dirty[e] = struct{}{} })

	m.quads.OnInsert(func(_ engine.Entity, q Quads) { m.quadCount += len(q) })
	m.quads.OnReplace(func(_ engine.Entity, old, next Quads) { m.quadCount += len(next) - len(old) })
	m.quads.OnRemove(func(_ engine.Entity, q Quads) { m.quadCount -= len(q) })

	return m
}

// Schedule is the per-tick pass that turns cache changes into compute
// tasks. The neighborhood is copied at spawn time, so the background
// computation works on a self-contained snapshot of shared immutable
// volumes and never touches live caches.
func (m *Mesher) Schedule() {
	for e := range m.dirty {
		delete(m.dirty, e)
		if !m.world.Alive(e) {
			continue
		}
		cache, ok := m.caches.Get(e)
		if !ok {
			continue
		}
		snapshot := cache
		m.runner.Spawn(e, func(ctx context.Context) Quads {
			return BuildQuads(&snapshot)
		})
	}
}

// Poll installs finished meshes on their owners.
func (m *Mesher) Poll() {
	m.runner.Poll()
}

// Quads is the per-chunk face-list store exposed to a renderer.
func (m *Mesher) Quads() *engine.Store[Quads] { return m.quads }

// QuadCount returns the running total of installed quads.
func (m *Mesher) QuadCount() int { return m.quadCount }

// Busy reports whether meshes are still pending or unscheduled.
func (m *Mesher) Busy() bool {
	return len(m.dirty) > 0 || m.runner.Pending() > 0
}

// Close shuts down the worker pool.
func (m *Mesher) Close() { m.runner.Close() }
