package chunk

import (
	"log"

	"voxelmesh/internal/engine"
	"voxelmesh/internal/spatial"
)

// Index is the bidirectional map between chunk coordinates and chunk
// entities. Both directions are mutated only in lockstep, driven by the
// position store's attach/detach notifications, so they stay mutually
// consistent.
type Index struct {
	byPos    map[spatial.ChunkCoord]engine.Entity
	byEntity map[engine.Entity]spatial.ChunkCoord
}

// NewIndex creates an index wired to the given position store. It
// registers on insert and unregisters on remove; the remove hook still
// carries the outgoing coordinate, so eviction never needs a lookup that
// can race with data loss.
func NewIndex(positions *engine.Store[spatial.ChunkCoord]) *Index {
	ix := &Index{
		byPos:    make(map[spatial.ChunkCoord]engine.Entity),
		byEntity: make(map[engine.Entity]spatial.ChunkCoord),
	}
	positions.OnInsert(func(e engine.Entity, pos spatial.ChunkCoord) {
		ix.register(pos, e)
	})
	positions.OnReplace(func(e engine.Entity, old, next spatial.ChunkCoord) {
		// Chunks do not normally move; keep the maps consistent anyway.
		ix.unregister(old, e)
		ix.register(next, e)
	})
	positions.OnRemove(func(e engine.Entity, pos spatial.ChunkCoord) {
		ix.unregister(pos, e)
	})
	return ix
}

// Entity returns the chunk entity at a coordinate.
func (ix *Index) Entity(pos spatial.ChunkCoord) (engine.Entity, bool) {
	e, ok := ix.byPos[pos]
	return e, ok
}

// Position returns the coordinate of a chunk entity.
func (ix *Index) Position(e engine.Entity) (spatial.ChunkCoord, bool) {
	pos, ok := ix.byEntity[e]
	return pos, ok
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	return len(ix.byPos)
}

func (ix *Index) register(pos spatial.ChunkCoord, e engine.Entity) {
	if prev, ok := ix.byPos[pos]; ok && prev != e {
		log.Printf("chunk: index register at %v clobbers entity %d with %d", pos, prev, e)
	}
	ix.byPos[pos] = e
	ix.byEntity[e] = pos
}

func (ix *Index) unregister(pos spatial.ChunkCoord, e engine.Entity) {
	if _, ok := ix.byEntity[e]; !ok {
		// Pathological: notification for an entity the index never saw.
		log.Printf("chunk: index unregister for unknown entity %d at %v, dropped", e, pos)
		return
	}
	delete(ix.byPos, pos)
	delete(ix.byEntity, e)
}
