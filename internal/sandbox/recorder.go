package sandbox

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mote2d/mote/internal/core/ecs"
	coresys "github.com/mote2d/mote/internal/core/system"
	"github.com/mote2d/mote/internal/persist"
	"github.com/mote2d/mote/internal/physics"
)

// RecorderSystem periodically samples every body's position and
// velocity into the run store. Phase 4 (Persist), after all reads of
// post-step state. A failed write logs and drops the batch; recording
// never stalls the simulation.
type RecorderSystem struct {
	bridge   *physics.Bridge
	repo     *persist.RunRepo
	runID    int64
	interval int
	ticks    int
	log      *zap.Logger
}

func NewRecorderSystem(bridge *physics.Bridge, repo *persist.RunRepo, runID int64, interval int, log *zap.Logger) *RecorderSystem {
	if interval < 1 {
		interval = 1
	}
	return &RecorderSystem{
		bridge:   bridge,
		repo:     repo,
		runID:    runID,
		interval: interval,
		log:      log,
	}
}

func (s *RecorderSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *RecorderSystem) Update(_ time.Duration) {
	s.ticks++
	if s.ticks%s.interval != 0 {
		return
	}

	tick := s.bridge.Frame()
	var samples []persist.Sample
	s.bridge.Bodies.Each(func(id ecs.EntityID, body *physics.Body) {
		if body.Empty() {
			return
		}
		pos := body.Raw().Position()
		vel := body.Raw().Velocity()
		samples = append(samples, persist.Sample{
			Tick:   tick,
			Entity: uint64(id),
			X:      pos.X,
			Y:      pos.Y,
			VX:     vel.X,
			VY:     vel.Y,
		})
	})
	if len(samples) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.repo.InsertSamples(ctx, s.runID, samples); err != nil {
		s.log.Error("record samples", zap.Error(err), zap.Int64("tick", tick))
	}
}
