package chunk

import "voxelmesh/internal/spatial"

// Neighborhood caches shared read-only references to the datum of the 27
// chunks at relative offsets {-1,0,1}^3, the chunk itself included at
// offset (0,0,0). A slot is nil when no neighbor chunk exists at that
// offset or that neighbor currently publishes no datum.
type Neighborhood[T any] struct {
	slots [27]*T
}

// Slot returns the cached reference at a relative offset in {-1,0,1}^3.
func (n *Neighborhood[T]) Slot(ox, oy, oz int) *T {
	return n.slots[spatial.SlotIndex(ox, oy, oz)]
}

// SetSlot overwrites the cached reference at a relative offset.
func (n *Neighborhood[T]) SetSlot(ox, oy, oz int, v *T) {
	n.slots[spatial.SlotIndex(ox, oy, oz)] = v
}

// Middle returns the chunk's own datum, or nil if unpublished.
func (n *Neighborhood[T]) Middle() *T {
	return n.Slot(0, 0, 0)
}

// Complete reports whether every slot is populated.
func (n *Neighborhood[T]) Complete() bool {
	for _, s := range n.slots {
		if s == nil {
			return false
		}
	}
	return true
}

// Full converts the cache into a completeness view; ok is false while any
// slot is empty.
func (n *Neighborhood[T]) Full() (FullNeighborhood[T], bool) {
	if !n.Complete() {
		return FullNeighborhood[T]{}, false
	}
	return FullNeighborhood[T]{slots: n.slots}, true
}

// FullNeighborhood is the derived view present only while all 27 slots of
// the underlying cache are populated. Every reference is non-nil.
type FullNeighborhood[T any] struct {
	slots [27]*T
}

// Slot returns the datum at a relative offset in {-1,0,1}^3.
func (f *FullNeighborhood[T]) Slot(ox, oy, oz int) *T {
	return f.slots[spatial.SlotIndex(ox, oy, oz)]
}

// Middle returns the chunk's own datum.
func (f *FullNeighborhood[T]) Middle() *T {
	return f.Slot(0, 0, 0)
}
