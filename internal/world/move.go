package world

import (
	"github.com/dobrilasunde/Shooting-Gallery/internal/geom"
)

// MoveComponent integrates the owner's yaw and planar motion each update.
// Speeds are per second; angular speed is radians about +Z.
type MoveComponent struct {
	Base
	angularSpeed float32
	forwardSpeed float32
	strafeSpeed  float32
}

// NewMoveComponent attaches a mover to owner.
func NewMoveComponent(owner *Actor) *MoveComponent {
	m := newMove(owner)
	owner.AddComponent(m)
	return m
}

func newMove(owner *Actor) *MoveComponent {
	return &MoveComponent{Base: NewBase(owner, MoveUpdateOrder)}
}

func (m *MoveComponent) AngularSpeed() float32 { return m.angularSpeed }
func (m *MoveComponent) ForwardSpeed() float32 { return m.forwardSpeed }
func (m *MoveComponent) StrafeSpeed() float32  { return m.strafeSpeed }

func (m *MoveComponent) SetAngularSpeed(s float32) { m.angularSpeed = s }
func (m *MoveComponent) SetForwardSpeed(s float32) { m.forwardSpeed = s }
func (m *MoveComponent) SetStrafeSpeed(s float32)  { m.strafeSpeed = s }

func (m *MoveComponent) Update(dt float32) {
	owner := m.Owner()
	if !geom.NearZero(m.angularSpeed) {
		inc := geom.AxisAngle(geom.UnitZ, m.angularSpeed*dt)
		owner.SetRotation(geom.Concatenate(owner.Rotation(), inc))
	}
	if !geom.NearZero(m.forwardSpeed) || !geom.NearZero(m.strafeSpeed) {
		pos := owner.Position()
		pos = pos.Add(owner.Forward().Mul(m.forwardSpeed * dt))
		pos = pos.Add(owner.Right().Mul(m.strafeSpeed * dt))
		owner.SetPosition(pos)
	}
}

// DefaultBallSegment is how far ahead a ball probes for boxes each update.
const DefaultBallSegment float32 = 30

// BallMove is a MoveComponent that probes a short segment ahead of the
// owner before moving. A hit on anything but the shooter reflects the
// owner's heading off the struck face.
type BallMove struct {
	*MoveComponent
	player        *Actor
	segmentLength float32
	onHit         func(CollisionInfo)
}

// NewBallMove attaches a ball mover to owner.
func NewBallMove(owner *Actor) *BallMove {
	b := &BallMove{
		MoveComponent: newMove(owner),
		segmentLength: DefaultBallSegment,
	}
	owner.AddComponent(b)
	return b
}

// SetPlayer sets the actor whose boxes the probe passes through.
func (b *BallMove) SetPlayer(player *Actor) { b.player = player }

func (b *BallMove) SetSegmentLength(length float32) { b.segmentLength = length }

// SetHitHandler installs fn to be called when the probe strikes a target.
func (b *BallMove) SetHitHandler(fn func(CollisionInfo)) { b.onHit = fn }

func (b *BallMove) Update(dt float32) {
	owner := b.Owner()
	start := owner.Position()
	dir := owner.Forward()
	l := geom.NewLineSegment(start, start.Add(dir.Mul(b.segmentLength)))

	info, ok := owner.World().Phys().SegmentCast(l)
	if ok && info.Actor != b.player {
		owner.RotateToNewForward(geom.Reflect(dir, info.Normal))
		if info.Actor != nil && info.Actor.Kind() == KindTarget && b.onHit != nil {
			b.onHit(info)
		}
	}

	b.MoveComponent.Update(dt)
}
