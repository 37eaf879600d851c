package sandbox

import (
	"time"

	"github.com/mote2d/mote/internal/core/ecs"
	"github.com/mote2d/mote/internal/core/event"
	coresys "github.com/mote2d/mote/internal/core/system"
)

// CleanupSystem flushes the deferred entity destruction queue at tick
// end, firing the bridge's detach hooks for every flushed entity and
// announcing each destruction on the bus. Phase 5 (Cleanup).
type CleanupSystem struct {
	world *ecs.World
	bus   *event.Bus
}

func NewCleanupSystem(world *ecs.World, bus *event.Bus) *CleanupSystem {
	return &CleanupSystem{world: world, bus: bus}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	for _, id := range s.world.FlushDestroyQueue() {
		event.Emit(s.bus, event.EntityDestroyed{Entity: id})
	}
}
