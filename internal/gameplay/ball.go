package gameplay

import (
	"github.com/dobrilasunde/Shooting-Gallery/internal/config"
	"github.com/dobrilasunde/Shooting-Gallery/internal/core/clock"
	"github.com/dobrilasunde/Shooting-Gallery/internal/core/event"
	"github.com/dobrilasunde/Shooting-Gallery/internal/world"
	"go.uber.org/zap"
)

// Ball is a fired projectile. It flies along its forward, bouncing off
// whatever its probe strikes, and dies when its life span runs out.
type Ball struct {
	actor    *world.Actor
	move     *world.BallMove
	lifeSpan float32
	hits     int
}

func NewBall(w *world.World, cat Catalog, meshName string, cfg config.BallConfig) *Ball {
	a := w.NewActor(world.KindBall)
	attachMesh(a, cat, meshName)

	b := &Ball{
		actor:    a,
		move:     world.NewBallMove(a),
		lifeSpan: clock.Seconds(cfg.LifeSpan),
	}
	b.move.SetForwardSpeed(cfg.Speed)
	if cfg.SegmentLength > 0 {
		b.move.SetSegmentLength(cfg.SegmentLength)
	}
	b.move.SetHitHandler(b.hitTarget)
	a.SetBehavior(b)
	return b
}

func (b *Ball) Actor() *world.Actor      { return b.actor }
func (b *Ball) Move() *world.BallMove    { return b.move }
func (b *Ball) LifeSpan() float32        { return b.lifeSpan }
func (b *Ball) Hits() int                { return b.hits }
func (b *Ball) SetPlayer(p *world.Actor) { b.move.SetPlayer(p) }

func (b *Ball) UpdateActor(dt float32) {
	b.lifeSpan -= dt
	if b.lifeSpan < 0 {
		b.actor.SetState(world.Dead)
	}
}

func (b *Ball) hitTarget(info world.CollisionInfo) {
	b.hits++
	w := b.actor.World()
	w.Log().Debug("target hit",
		zap.Uint64("ball", uint64(b.actor.ID())),
		zap.Uint64("target", uint64(info.Actor.ID())),
		zap.Uint64("frame", w.Frame()),
	)
	if bus := w.Bus(); bus != nil {
		event.Emit(bus, event.TargetHit{
			Frame:  w.Frame(),
			Ball:   b.actor.ID(),
			Target: info.Actor.ID(),
			Point:  info.Point,
			Normal: info.Normal,
		})
	}
}
