package physics

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/mote2d/mote/internal/core/ecs"
	"github.com/mote2d/mote/internal/core/event"
)

// Config carries the space parameters applied at install time.
type Config struct {
	Gravity    cp.Vector
	Iterations uint // solver iterations, 0 keeps the engine default
}

// Bridge owns the space singleton and the Body/Shape component stores,
// and keeps space membership synchronized with component lifecycle.
type Bridge struct {
	world *ecs.World
	bus   *event.Bus
	log   *zap.Logger

	space Space

	Bodies *ecs.ComponentStore[Body]
	Shapes *ecs.ComponentStore[Shape]

	stepping bool
	frame    int64
}

// Install creates the physics space, publishes it as the world's Space
// resource, and wires the four lifecycle hooks:
//
//   - Body attach: stamp the entity identity into the engine body's
//     UserData slot, then insert the body into the space.
//   - Body detach: detach the entity's dependent Shape first if still
//     present, remove the body from the space, clear UserData, release
//     the handle.
//   - Shape attach: insert the shape into the space.
//   - Shape detach: remove the shape from the space, release the handle.
//
// Hooks run synchronously inside store Set/Remove, so by the time a
// component slot is released its engine object has already left the
// space.
func Install(world *ecs.World, bus *event.Bus, cfg Config, log *zap.Logger) *Bridge {
	raw := cp.NewSpace()
	if raw == nil {
		panic("physics: space allocation failed")
	}
	raw.SetGravity(cfg.Gravity)
	if cfg.Iterations > 0 {
		raw.Iterations = cfg.Iterations
	}

	b := &Bridge{
		world: world,
		bus:   bus,
		log:   log,
		space: WrapSpace(raw),
	}
	log.Debug("wrap space", zap.Float64("gx", cfg.Gravity.X), zap.Float64("gy", cfg.Gravity.Y))

	ecs.SetResource(world, &b.space)

	// Shapes register ahead of Bodies so bulk entity destruction
	// detaches an entity's shape before its body.
	b.Shapes = ecs.NewComponentStore[Shape]()
	world.Registry().Register(b.Shapes)
	b.Bodies = ecs.NewComponentStore[Body]()
	world.Registry().Register(b.Bodies)

	b.Bodies.OnAttach(func(id ecs.EntityID, body *Body) {
		sp := b.mustSpace()
		raw := body.Raw()
		raw.UserData = id
		sp.AddBody(raw)
		body.join(sp)
		b.log.Debug("body attached", zap.Uint64("entity", uint64(id)))
	})
	b.Bodies.OnDetach(func(id ecs.EntityID, body *Body) {
		b.log.Debug("body detached", zap.Uint64("entity", uint64(id)))
		// A shape outliving its body leaves the engine graph dangling;
		// detach the dependent shape first.
		if b.Shapes.Has(id) {
			b.Shapes.Remove(id)
		}
		if body.Empty() {
			return // handle was moved out of the component; nothing to release
		}
		sp := b.mustSpace()
		raw := body.Raw()
		sp.RemoveBody(raw)
		raw.UserData = nil
		body.leave()
		body.Free()
	})

	b.Shapes.OnAttach(func(id ecs.EntityID, shape *Shape) {
		sp := b.mustSpace()
		sp.AddShape(shape.Raw())
		shape.join(sp)
		b.log.Debug("shape attached", zap.Uint64("entity", uint64(id)))
	})
	b.Shapes.OnDetach(func(id ecs.EntityID, shape *Shape) {
		b.log.Debug("shape detached", zap.Uint64("entity", uint64(id)))
		if shape.Empty() {
			return
		}
		sp := b.mustSpace()
		sp.RemoveShape(shape.Raw())
		shape.leave()
		shape.Free()
	})

	return b
}

// Space exposes the singleton space handle.
func (b *Bridge) Space() *Space { return &b.space }

// Frame reports the number of completed steps.
func (b *Bridge) Frame() int64 { return b.frame }

// Stepping reports whether a space step is currently executing.
// Collision callbacks only ever observe true.
func (b *Bridge) Stepping() bool { return b.stepping }

// mustSpace returns the live engine space. Lifecycle hooks firing
// against a torn-down space are a configuration error, not a runtime
// condition.
func (b *Bridge) mustSpace() *cp.Space {
	if b.space.Empty() {
		panic("physics: lifecycle hook fired without a live space")
	}
	return b.space.Raw()
}

// Teardown detaches every remaining Body and Shape component and
// releases the space. The world's Space resource is removed; any hook
// firing afterwards panics.
func (b *Bridge) Teardown() {
	b.Shapes.Each(func(id ecs.EntityID, _ *Shape) {
		b.Shapes.Remove(id)
	})
	b.Bodies.Each(func(id ecs.EntityID, _ *Body) {
		b.Bodies.Remove(id)
	})
	ecs.RemoveResource[Space](b.world)
	b.log.Debug("free space")
	b.space.Free()
}
