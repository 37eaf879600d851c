package sandbox

import (
	"go.uber.org/zap"

	"github.com/mote2d/mote/internal/core/ecs"
	"github.com/mote2d/mote/internal/core/event"
)

// Fragile marks an entity for destruction on its first contact.
type Fragile struct{}

// ImpactHandler destroys fragile entities that were struck. It reacts
// to ContactBegan events, so destruction happens through the deferred
// queue and never inside a step.
type ImpactHandler struct {
	world    *ecs.World
	fragiles *ecs.ComponentStore[Fragile]
	log      *zap.Logger
}

func NewImpactHandler(world *ecs.World, bus *event.Bus, log *zap.Logger) *ImpactHandler {
	h := &ImpactHandler{
		world:    world,
		fragiles: ecs.NewComponentStore[Fragile](),
		log:      log,
	}
	world.Registry().Register(h.fragiles)
	event.Subscribe(bus, h.onContact)
	return h
}

// Fragiles exposes the marker store so spawn code can tag entities.
func (h *ImpactHandler) Fragiles() *ecs.ComponentStore[Fragile] { return h.fragiles }

func (h *ImpactHandler) onContact(ev event.ContactBegan) {
	if !h.fragiles.Has(ev.Entity) {
		return
	}
	h.log.Debug("entity struck; removing", zap.Uint64("entity", uint64(ev.Entity)))
	h.world.MarkForDestruction(ev.Entity)
}
