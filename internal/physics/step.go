package physics

import (
	"time"

	coresys "github.com/mote2d/mote/internal/core/system"
)

// StepSystem advances the space once per tick. It runs in PhaseStep,
// after event delivery and before update logic, so every attach hook
// fired by the previous tick's logic is visible to the step and update
// code always reads post-step state.
type StepSystem struct {
	bridge *Bridge
}

func NewStepSystem(b *Bridge) *StepSystem {
	return &StepSystem{bridge: b}
}

func (s *StepSystem) Phase() coresys.Phase { return coresys.PhaseStep }

// Update steps the space by the tick delta. Contact callbacks fire
// synchronously inside this call; the stepping flag brackets the
// interval in which they are legal.
func (s *StepSystem) Update(dt time.Duration) {
	sp := s.bridge.mustSpace()
	s.bridge.stepping = true
	sp.Step(dt.Seconds())
	s.bridge.stepping = false
	s.bridge.frame++
}
