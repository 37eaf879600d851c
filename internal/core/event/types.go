package event

import "github.com/mote2d/mote/internal/core/ecs"

// ContactBegan reports one participant's view of a contact-begin
// detected during the physics step. The dispatcher emits it once per
// live participant, so a pair where both sides need to react produces
// two events with the roles swapped.
type ContactBegan struct {
	Entity ecs.EntityID
	// Other is the opposing participant, or zero when that side's
	// identity resolved stale (destroyed mid-step).
	Other ecs.EntityID
}

// EntityDestroyed is emitted by the cleanup system for each entity it
// flushes at tick end.
type EntityDestroyed struct {
	Entity ecs.EntityID
}
