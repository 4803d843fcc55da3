package system

import (
	"time"

	coresys "github.com/dobrilasunde/Shooting-Gallery/internal/core/system"
	"github.com/dobrilasunde/Shooting-Gallery/internal/world"
)

// CleanupSystem destroys the actors marked dead during the frame.
// Phase 4 (Cleanup).
type CleanupSystem struct {
	world *world.World
}

func NewCleanupSystem(w *world.World) *CleanupSystem {
	return &CleanupSystem{world: w}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.DestroyDead()
}
