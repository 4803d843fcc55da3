package system

import (
	"time"

	"github.com/dobrilasunde/Shooting-Gallery/internal/core/event"
	coresys "github.com/dobrilasunde/Shooting-Gallery/internal/core/system"
	"go.uber.org/zap"
)

// Stats are the running totals of a session.
type Stats struct {
	Frames    uint64
	Shots     int
	AimedHits int // shots whose hit-scan ray landed on a target
	BallHits  int // balls that struck a target
	Destroyed int
}

// Accuracy is the share of shots whose ball struck a target.
func (s Stats) Accuracy() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.BallHits) / float64(s.Shots)
}

// StatsSystem tallies gameplay events. Phase 6 (Persist).
type StatsSystem struct {
	stats Stats
	log   *zap.Logger
}

func NewStatsSystem(bus *event.Bus, log *zap.Logger) *StatsSystem {
	s := &StatsSystem{log: log}
	event.Subscribe(bus, func(e event.ShotFired) {
		s.stats.Shots++
		if e.AimedTarget {
			s.stats.AimedHits++
		}
	})
	event.Subscribe(bus, func(event.TargetHit) { s.stats.BallHits++ })
	event.Subscribe(bus, func(event.ActorDestroyed) { s.stats.Destroyed++ })
	return s
}

func (s *StatsSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *StatsSystem) Update(_ time.Duration) {
	s.stats.Frames++
}

func (s *StatsSystem) Stats() Stats { return s.stats }

// LogSummary writes the session totals.
func (s *StatsSystem) LogSummary() {
	s.log.Info("session summary",
		zap.Uint64("frames", s.stats.Frames),
		zap.Int("shots", s.stats.Shots),
		zap.Int("aimed_hits", s.stats.AimedHits),
		zap.Int("ball_hits", s.stats.BallHits),
		zap.Int("destroyed", s.stats.Destroyed),
		zap.Float64("accuracy", s.stats.Accuracy()),
	)
}
