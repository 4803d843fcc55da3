package system

import (
	"time"

	"github.com/dobrilasunde/Shooting-Gallery/internal/core/clock"
	"github.com/dobrilasunde/Shooting-Gallery/internal/core/event"
	coresys "github.com/dobrilasunde/Shooting-Gallery/internal/core/system"
	"github.com/dobrilasunde/Shooting-Gallery/internal/world"
)

// EventDispatchSystem delivers the events emitted last frame.
// Phase 1 (PreUpdate).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

// ActorSystem runs the actor and component update pass. Phase 2 (Update).
type ActorSystem struct {
	world *world.World
}

func NewActorSystem(w *world.World) *ActorSystem {
	return &ActorSystem{world: w}
}

func (s *ActorSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ActorSystem) Update(dt time.Duration) {
	s.world.UpdateActors(clock.Seconds(dt))
}

// SpliceSystem moves actors spawned during the pass into the live set.
// Phase 3 (PostUpdate).
type SpliceSystem struct {
	world *world.World
}

func NewSpliceSystem(w *world.World) *SpliceSystem {
	return &SpliceSystem{world: w}
}

func (s *SpliceSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *SpliceSystem) Update(_ time.Duration) {
	s.world.FlushPending()
}
