package system

import (
	"context"
	"time"

	"github.com/dobrilasunde/Shooting-Gallery/internal/core/event"
	coresys "github.com/dobrilasunde/Shooting-Gallery/internal/core/system"
	"github.com/dobrilasunde/Shooting-Gallery/internal/persist"
	"go.uber.org/zap"
)

// ShotWriter stores a batch of shot and hit rows.
type ShotWriter interface {
	WriteBatch(ctx context.Context, sessionID int64, shots []persist.ShotRow, hits []persist.HitRow) error
}

// PersistenceSystem buffers shots and hits and writes them every interval
// frames. A failed batch is logged and dropped; the frame loop never waits
// on a retry. Phase 6 (Persist).
type PersistenceSystem struct {
	writer    ShotWriter
	sessionID int64
	log       *zap.Logger
	interval  int
	tickCount int
	timeout   time.Duration

	shots   []persist.ShotRow
	hits    []persist.HitRow
	written int
	dropped int
}

func NewPersistenceSystem(bus *event.Bus, writer ShotWriter, sessionID int64, log *zap.Logger, intervalTicks int) *PersistenceSystem {
	s := &PersistenceSystem{
		writer:    writer,
		sessionID: sessionID,
		log:       log,
		interval:  intervalTicks,
		timeout:   2 * time.Second,
	}
	event.Subscribe(bus, func(e event.ShotFired) {
		s.shots = append(s.shots, persist.ShotRow{
			Frame:       e.Frame,
			Origin:      e.Origin,
			Direction:   e.Direction,
			AimedTarget: e.AimedTarget,
		})
	})
	event.Subscribe(bus, func(e event.TargetHit) {
		s.hits = append(s.hits, persist.HitRow{
			Frame:    e.Frame,
			TargetID: uint64(e.Target),
			Point:    e.Point,
		})
	})
	return s
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.Flush(ctx)
}

// Flush writes whatever is buffered. Called on the interval and once more
// at shutdown.
func (s *PersistenceSystem) Flush(ctx context.Context) {
	if len(s.shots) == 0 && len(s.hits) == 0 {
		return
	}
	n := len(s.shots) + len(s.hits)
	if err := s.writer.WriteBatch(ctx, s.sessionID, s.shots, s.hits); err != nil {
		s.dropped += n
		s.log.Error("shot batch write failed, dropping",
			zap.Error(err),
			zap.Int("rows", n),
		)
	} else {
		s.written += n
		s.log.Debug("shot batch written", zap.Int("rows", n))
	}
	s.shots = nil
	s.hits = nil
}

// Pending is the number of buffered rows.
func (s *PersistenceSystem) Pending() int { return len(s.shots) + len(s.hits) }

func (s *PersistenceSystem) Written() int { return s.written }
func (s *PersistenceSystem) Dropped() int { return s.dropped }
