package mesh

import (
	"testing"
	"time"

	"voxelmesh/internal/block"
	"voxelmesh/internal/engine"
)

func settleMesher(t *testing.T, w *engine.World, m *Mesher, e engine.Entity) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		m.Schedule()
		m.Poll()
		w.Flush()
		if !m.Busy() && m.Quads().Has(e) {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("mesher did not settle before deadline")
}

func TestMesherInstallsAndCounts(t *testing.T) {
	w := engine.NewWorld()
	caches := engine.NewStore[Volumes](w)
	m := NewMesher(w, caches, 2, 16)
	defer m.Close()

	middle := block.NewVolume()
	middle.Set(1, 1, 1, block.Stone)
	e := w.Spawn()
	caches.Set(e, *lone(middle))
	settleMesher(t, w, m, e)

	quads, _ := m.Quads().Get(e)
	if len(quads) != 6 {
		t.Fatalf("installed %d quads, want 6", len(quads))
	}
	if m.QuadCount() != 6 {
		t.Fatalf("quad count %d, want 6", m.QuadCount())
	}

	// Re-publishing the cache re-meshes and replaces the list wholesale.
	middle2 := block.NewVolume()
	middle2.Set(1, 1, 1, block.Stone)
	middle2.Set(3, 1, 1, block.Stone)
	caches.Set(e, *lone(middle2))
	settleMesher(t, w, m, e)
	quads, _ = m.Quads().Get(e)
	if len(quads) != 12 {
		t.Fatalf("after re-mesh: %d quads, want 12", len(quads))
	}
	if m.QuadCount() != 12 {
		t.Fatalf("after re-mesh: count %d, want 12", m.QuadCount())
	}

	w.Despawn(e)
	if m.QuadCount() != 0 {
		t.Fatalf("after despawn: count %d, want 0", m.QuadCount())
	}
}

func TestMesherSkipsDestroyedOwner(t *testing.T) {
	w := engine.NewWorld()
	caches := engine.NewStore[Volumes](w)
	m := NewMesher(w, caches, 1, 16)
	defer m.Close()

	middle := block.NewVolume()
	middle.Set(1, 1, 1, block.Stone)
	e := w.Spawn()
	caches.Set(e, *lone(middle))
	w.Despawn(e)

	for i := 0; i < 20; i++ {
		m.Schedule()
		m.Poll()
		w.Flush()
		time.Sleep(time.Millisecond)
	}
	if m.Quads().Has(e) {
		t.Fatal("mesh installed for destroyed chunk")
	}
	if m.QuadCount() != 0 {
		t.Fatalf("quad count %d, want 0", m.QuadCount())
	}
}
