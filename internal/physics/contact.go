package physics

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/mote2d/mote/internal/core/ecs"
	"github.com/mote2d/mote/internal/core/event"
)

// ContactFunc decides the engine's physical response to a contact the
// tagged entity participates in. Returning false suppresses the
// collision response (no impulse, no velocity change), mirroring the
// engine's begin-handler contract. other is zero when the opposing
// identity resolved stale.
type ContactFunc func(entity, other ecs.EntityID) bool

// OnContact registers a wildcard contact-begin handler for one
// collision-type tag. For every qualifying contact the dispatcher,
// synchronously inside the step:
//
//  1. resolves both engine bodies back to entity identities through
//     their UserData slots,
//  2. emits a ContactBegan event from each live participant's
//     perspective (delivered next tick by the event dispatch system),
//  3. passes fn's verdict through to the engine.
//
// A side whose identity is stale — the entity was destroyed between
// step begin and the callback, a legitimate race between two contacts
// resolving in the same step — is skipped, never fatal. Structural
// mutation from inside fn must go through World.MarkForDestruction;
// the space cannot be mutated mid-step.
func (b *Bridge) OnContact(tag cp.CollisionType, fn ContactFunc) {
	handler := b.mustSpace().NewWildcardCollisionHandler(tag)
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		bodyA, bodyB := arb.Bodies()
		ea, okA := b.resolve(bodyA)
		eb, okB := b.resolve(bodyB)

		if okA {
			event.Emit(b.bus, event.ContactBegan{Entity: ea, Other: eb})
		}
		if okB {
			event.Emit(b.bus, event.ContactBegan{Entity: eb, Other: ea})
		}
		if !okA {
			// The tagged side is gone; nothing to decide.
			return true
		}
		if fn == nil {
			return true
		}
		return fn(ea, eb)
	}
}

// resolve recovers the entity identity stashed in a body's UserData
// slot. The slot carries exactly one ecs.EntityID and nothing else.
func (b *Bridge) resolve(raw *cp.Body) (ecs.EntityID, bool) {
	id, ok := raw.UserData.(ecs.EntityID)
	if !ok {
		b.log.Debug("contact body carries no identity")
		return 0, false
	}
	if !b.world.Alive(id) {
		b.log.Debug("contact identity is stale", zap.Uint64("entity", uint64(id)))
		return 0, false
	}
	return id, true
}
