package system

import (
	"time"

	coresys "github.com/dobrilasunde/Shooting-Gallery/internal/core/system"
	"github.com/dobrilasunde/Shooting-Gallery/internal/input"
	"github.com/dobrilasunde/Shooting-Gallery/internal/world"
	"go.uber.org/zap"
)

// InputSystem polls the input source once per frame, stamps the frame
// number on the world and hands the snapshot to every live actor.
// Phase 0 (Input).
type InputSystem struct {
	world  *world.World
	source input.Source
	log    *zap.Logger
	frame  uint64
	quit   bool
}

func NewInputSystem(w *world.World, source input.Source, log *zap.Logger) *InputSystem {
	return &InputSystem{world: w, source: source, log: log}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	s.frame++
	s.world.SetFrame(s.frame)

	snap := s.source.Poll()
	if snap.Quit || snap.Pressed(input.KeyEscape) {
		if !s.quit {
			s.log.Info("quit requested", zap.Uint64("frame", s.frame))
		}
		s.quit = true
	}
	s.world.ProcessInput(snap)
}

// QuitRequested reports whether the source asked to stop.
func (s *InputSystem) QuitRequested() bool { return s.quit }

// Frame is the number of the frame being processed.
func (s *InputSystem) Frame() uint64 { return s.frame }
