package gameplay

import (
	"github.com/dobrilasunde/Shooting-Gallery/internal/config"
	"github.com/dobrilasunde/Shooting-Gallery/internal/core/clock"
	"github.com/dobrilasunde/Shooting-Gallery/internal/core/event"
	"github.com/dobrilasunde/Shooting-Gallery/internal/data"
	"github.com/dobrilasunde/Shooting-Gallery/internal/geom"
	"github.com/dobrilasunde/Shooting-Gallery/internal/input"
	"github.com/dobrilasunde/Shooting-Gallery/internal/world"
	"github.com/go-gl/mathgl/mgl32"
)

// StandingBox is the player's collision box when upright. It is never
// rotated with the actor.
var StandingBox = geom.NewAABB(mgl32.Vec3{-25, -25, -87.5}, mgl32.Vec3{25, 25, 87.5})

const (
	weaponScale   = 0.75
	weaponForward = 10
	weaponRight   = 10
	weaponDrop    = 10

	ballSpawnOffset = 20    // distance in front of the near plane
	aimDepth        = 0.9   // screen z of the far aim point
	hitScanRange    = 10000 // length of the crosshair ray
)

// Player is the first-person actor: WASD movement, mouse look, jump,
// crouch and a rifle that fires balls through the screen center.
type Player struct {
	actor  *world.Actor
	move   *world.MoveComponent
	camera *world.FPSCamera
	box    *world.BoxComponent

	weapon     *world.Actor
	weaponMesh *world.MeshComponent

	cfg      config.PlayerConfig
	ballCfg  config.BallConfig
	cat      Catalog
	ballMesh string

	jumping   bool
	jumpTime  float32
	crouchOld bool
	crouchNew bool
	shots     int
}

// NewPlayer spawns the player and its weapon model.
func NewPlayer(w *world.World, cat Catalog, assets data.Assets, cfg config.PlayerConfig, ballCfg config.BallConfig) *Player {
	a := w.NewActor(world.KindPlayer)
	p := &Player{
		actor:    a,
		move:     world.NewMoveComponent(a),
		camera:   world.NewFPSCamera(a),
		cfg:      cfg,
		ballCfg:  ballCfg,
		cat:      cat,
		ballMesh: assets.Ball,
	}

	p.weapon = w.NewActor(world.KindPlain)
	p.weapon.SetScale(weaponScale)
	p.weaponMesh = attachMesh(p.weapon, cat, assets.Weapon)

	p.box = world.NewBoxComponent(a)
	p.box.SetObjectBox(StandingBox)
	p.box.SetShouldRotate(false)

	a.SetBehavior(p)
	return p
}

func (p *Player) Actor() *world.Actor        { return p.actor }
func (p *Player) Move() *world.MoveComponent { return p.move }
func (p *Player) Camera() *world.FPSCamera   { return p.camera }
func (p *Player) Box() *world.BoxComponent   { return p.box }
func (p *Player) Weapon() *world.Actor       { return p.weapon }
func (p *Player) Jumping() bool              { return p.jumping }
func (p *Player) Crouching() bool            { return p.crouchOld }
func (p *Player) Shots() int                 { return p.shots }
func (p *Player) SetVisible(visible bool)    { p.weaponMesh.SetVisible(visible) }

// CrouchingBox is the standing box with its bottom raised by the crouch
// drop, so the top stays at eye level once the actor has sunk.
func (p *Player) CrouchingBox() geom.AABB {
	b := StandingBox
	b.Min[2] += p.cfg.CrouchDrop
	return b
}

func (p *Player) ActorInput(in input.Snapshot) {
	var forward, strafe float32
	if in.Pressed(input.KeyW) {
		forward += p.cfg.MoveSpeed
	}
	if in.Pressed(input.KeyS) {
		forward -= p.cfg.MoveSpeed
	}
	if in.Pressed(input.KeyA) {
		strafe -= p.cfg.MoveSpeed
	}
	if in.Pressed(input.KeyD) {
		strafe += p.cfg.MoveSpeed
	}
	p.move.SetForwardSpeed(forward)
	p.move.SetStrafeSpeed(strafe)

	if !p.jumping {
		p.jumping = in.Pressed(input.KeySpace)
	}
	p.crouchNew = in.Pressed(input.KeyLShift)

	p.move.SetAngularSpeed(p.mouseSpeed(in.MouseDX))
	p.camera.SetPitchSpeed(p.mouseSpeed(in.MouseDY))

	if in.Fire {
		p.Shoot()
	}
}

func (p *Player) mouseSpeed(delta int) float32 {
	if delta == 0 || p.cfg.MaxMouseSpeed == 0 {
		return 0
	}
	return float32(delta) / p.cfg.MaxMouseSpeed * p.cfg.MaxAngularSpeed
}

func (p *Player) UpdateActor(dt float32) {
	p.FixCollisions()

	var rise float32
	if p.jumping {
		duration := clock.Seconds(p.cfg.JumpDuration)
		p.jumpTime += dt
		if p.jumpTime >= duration {
			p.jumping = false
			p.jumpTime = 0
		} else {
			rise = p.cfg.JumpSpeed * geom.Cos(geom.Pi*p.jumpTime/duration)
		}
	}

	pos := p.actor.Position()
	pos[2] += rise
	switch {
	case !p.crouchOld && p.crouchNew:
		pos[2] -= p.cfg.CrouchDrop
		p.box.SetObjectBox(p.CrouchingBox())
	case p.crouchOld && !p.crouchNew:
		pos[2] += p.cfg.CrouchDrop
		p.box.SetObjectBox(StandingBox)
	}
	p.actor.SetPosition(pos)
	p.box.OnUpdateWorldTransform()
	p.crouchOld = p.crouchNew

	p.placeWeapon()
}

// FixCollisions pushes the player out of every plane it overlaps, one
// axis per plane, refreshing the box after each push.
func (p *Player) FixCollisions() {
	p.actor.ComputeWorldTransform()

	pos := p.actor.Position()
	for _, plane := range p.actor.World().Planes() {
		d, ok := geom.ResolveOverlap(p.box.WorldBox(), plane.WorldBox())
		if !ok {
			continue
		}
		pos = pos.Add(d)
		p.actor.SetPosition(pos)
		p.box.OnUpdateWorldTransform()
	}
}

func (p *Player) placeWeapon() {
	a := p.actor
	pos := a.Position().
		Add(a.Forward().Mul(weaponForward)).
		Add(a.Right().Mul(weaponRight))
	pos[2] -= weaponDrop
	p.weapon.SetPosition(pos)
	p.weapon.SetRotation(geom.Concatenate(a.Rotation(), p.camera.PitchRotation()))
}

// Shoot fires a ball from the near plane through the screen center and
// reports the shot, including what the crosshair was on.
func (p *Player) Shoot() *Ball {
	w := p.actor.World()
	r := w.Renderer()
	start := r.Unproject(mgl32.Vec3{0, 0, 0})
	end := r.Unproject(mgl32.Vec3{0, 0, aimDepth})
	dir := geom.SafeNormalize(end.Sub(start))
	if dir == (mgl32.Vec3{}) {
		dir = p.actor.Forward()
	}

	ball := NewBall(w, p.cat, p.ballMesh, p.ballCfg)
	ball.SetPlayer(p.actor)
	ball.Actor().SetPosition(start.Add(dir.Mul(ballSpawnOffset)))
	ball.Actor().RotateToNewForward(dir)
	p.shots++

	if bus := w.Bus(); bus != nil {
		shot := event.ShotFired{
			Frame:     w.Frame(),
			Shooter:   p.actor.ID(),
			Ball:      ball.Actor().ID(),
			Origin:    start,
			Direction: dir,
		}
		if info, ok := w.Phys().SegmentCastExcept(geom.NewLineSegment(start, start.Add(dir.Mul(hitScanRange))), p.actor); ok {
			shot.Aimed = true
			shot.AimedActor = info.Actor.ID()
			shot.AimedTarget = info.Actor.Kind() == world.KindTarget
			shot.AimedPoint = info.Point
		}
		event.Emit(bus, shot)
	}
	return ball
}
