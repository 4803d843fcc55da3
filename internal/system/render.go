package system

import (
	"time"

	coresys "github.com/dobrilasunde/Shooting-Gallery/internal/core/system"
	"github.com/dobrilasunde/Shooting-Gallery/internal/render"
	"go.uber.org/zap"
)

// Drawer is the part of the renderer the frame loop needs.
type Drawer interface {
	Draw() render.Stats
}

// RenderSystem submits the draw lists once per frame and logs draw stats
// every reportEvery frames. Phase 5 (Output).
type RenderSystem struct {
	drawer      Drawer
	log         *zap.Logger
	reportEvery uint64
}

func NewRenderSystem(d Drawer, log *zap.Logger, reportEvery uint64) *RenderSystem {
	return &RenderSystem{drawer: d, log: log, reportEvery: reportEvery}
}

func (s *RenderSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *RenderSystem) Update(_ time.Duration) {
	st := s.drawer.Draw()
	if s.reportEvery > 0 && st.Frame%s.reportEvery == 0 {
		s.log.Debug("draw",
			zap.Uint64("frame", st.Frame),
			zap.Int("meshes", st.Meshes),
			zap.Int("sprites", st.Sprites),
			zap.Int("culled", st.Culled),
		)
	}
}
