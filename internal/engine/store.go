package engine

// Store holds one typed attached datum per entity and notifies hooks on
// insert, replace and remove. Remove hooks receive the outgoing value, so
// observers can still read it at the instant it disappears.
type Store[T any] struct {
	values    map[Entity]T
	onInsert  []func(Entity, T)
	onReplace []func(e Entity, old, next T)
	onRemove  []func(Entity, T)
}

// NewStore creates a store and registers it with the world so Despawn
// discards its data.
func NewStore[T any](w *World) *Store[T] {
	s := &Store[T]{values: make(map[Entity]T)}
	w.register(s)
	return s
}

func (s *Store[T]) Get(e Entity) (T, bool) {
	v, ok := s.values[e]
	return v, ok
}

func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.values[e]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.values)
}

// Set attaches or replaces the entity's datum and fires the matching hooks.
func (s *Store[T]) Set(e Entity, v T) {
	old, had := s.values[e]
	s.values[e] = v
	if had {
		for _, fn := range s.onReplace {
			fn(e, old, v)
		}
		return
	}
	for _, fn := range s.onInsert {
		fn(e, v)
	}
}

// Remove detaches the entity's datum, firing remove hooks with the old
// value. Returns false if the entity had none.
func (s *Store[T]) Remove(e Entity) bool {
	v, ok := s.values[e]
	if !ok {
		return false
	}
	for _, fn := range s.onRemove {
		fn(e, v)
	}
	delete(s.values, e)
	return true
}

// Each visits all entries. Mutating the store during iteration is not
// allowed; queue mutations through World.Defer instead.
func (s *Store[T]) Each(fn func(Entity, T)) {
	for e, v := range s.values {
		fn(e, v)
	}
}

func (s *Store[T]) OnInsert(fn func(Entity, T)) {
	s.onInsert = append(s.onInsert, fn)
}

func (s *Store[T]) OnReplace(fn func(e Entity, old, next T)) {
	s.onReplace = append(s.onReplace, fn)
}

func (s *Store[T]) OnRemove(fn func(Entity, T)) {
	s.onRemove = append(s.onRemove, fn)
}

func (s *Store[T]) discard(e Entity) {
	s.Remove(e)
}
