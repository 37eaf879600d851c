package ecs

// World is the top-level ECS container. It owns the entity pool, the
// component registry, the resource singletons, and a deferred
// destruction queue flushed at the end of each tick.
type World struct {
	pool         *EntityPool
	registry     *Registry
	resources    *resourceSet
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		resources:    newResourceSet(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Destroy immediately removes an entity and all of its components.
// Never call this from inside a simulation step; use
// MarkForDestruction there and let the cleanup phase flush.
func (w *World) Destroy(id EntityID) {
	if !w.pool.Alive(id) {
		return
	}
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup. Safe to
// call from nested callback contexts where structural mutation is
// otherwise forbidden.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities and clears their
// components, returning the IDs that were actually destroyed. Called
// by the cleanup system at the end of each tick.
func (w *World) FlushDestroyQueue() []EntityID {
	destroyed := make([]EntityID, 0, len(w.destroyQueue))
	for _, id := range w.destroyQueue {
		if !w.pool.Alive(id) {
			continue // queued twice, or destroyed through another path
		}
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
		destroyed = append(destroyed, id)
	}
	w.destroyQueue = w.destroyQueue[:0]
	return destroyed
}
