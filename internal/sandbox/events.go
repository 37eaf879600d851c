// Package sandbox holds the application-level systems that run the
// headless simulation on top of the physics bridge.
package sandbox

import (
	"time"

	"github.com/mote2d/mote/internal/core/event"
	coresys "github.com/mote2d/mote/internal/core/system"
)

// EventDispatchSystem rotates the event bus and delivers last tick's
// events. Phase 0 (Events), so subscribers run before the step and may
// mutate the world freely.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
