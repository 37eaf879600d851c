package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseEvents     Phase = iota // 0: deliver last tick's events
	PhaseStep                    // 1: advance the physics space
	PhaseUpdate                  // 2: simulation logic
	PhasePostUpdate              // 3: reads of post-step state
	PhasePersist                 // 4: run recording
	PhaseCleanup                 // 5: destroy queued entities
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
