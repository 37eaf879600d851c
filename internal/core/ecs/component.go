package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// ComponentStore is a generic typed map store with lifecycle hooks.
// No reflect, no interface{} — pure generics. Attach hooks fire when a
// component becomes present on an entity, detach hooks fire before the
// slot is released. A Set over an already-present component fires the
// detach hooks for the old value to completion before the attach hooks
// for the new one, so hook code never observes a re-entrant attach.
type ComponentStore[T any] struct {
	data   map[EntityID]*T
	attach []func(EntityID, *T)
	detach []func(EntityID, *T)
}

func NewComponentStore[T any]() *ComponentStore[T] {
	return &ComponentStore[T]{
		data: make(map[EntityID]*T, 256),
	}
}

// OnAttach registers a hook invoked after a component becomes present.
// Registration is not concurrency-safe; wire hooks during setup.
func (s *ComponentStore[T]) OnAttach(fn func(EntityID, *T)) {
	s.attach = append(s.attach, fn)
}

// OnDetach registers a hook invoked while the component is still
// readable, before its slot is released or overwritten.
func (s *ComponentStore[T]) OnDetach(fn func(EntityID, *T)) {
	s.detach = append(s.detach, fn)
}

func (s *ComponentStore[T]) Set(id EntityID, c *T) {
	if old, ok := s.data[id]; ok {
		for _, fn := range s.detach {
			fn(id, old)
		}
	}
	s.data[id] = c
	for _, fn := range s.attach {
		fn(id, c)
	}
}

func (s *ComponentStore[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *ComponentStore[T]) Remove(id EntityID) {
	c, ok := s.data[id]
	if !ok {
		return
	}
	for _, fn := range s.detach {
		fn(id, c)
	}
	delete(s.data, id)
}

func (s *ComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *ComponentStore[T]) Len() int {
	return len(s.data)
}

func (s *ComponentStore[T]) Each(fn func(EntityID, *T)) {
	for id, c := range s.data {
		fn(id, c)
	}
}
