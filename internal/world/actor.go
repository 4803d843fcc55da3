package world

import (
	"slices"

	"github.com/dobrilasunde/Shooting-Gallery/internal/core/handle"
	"github.com/dobrilasunde/Shooting-Gallery/internal/geom"
	"github.com/dobrilasunde/Shooting-Gallery/internal/input"
	"github.com/go-gl/mathgl/mgl32"
)

// State is an actor's lifecycle state.
type State int

const (
	Active State = iota
	Paused
	Dead
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Paused:
		return "paused"
	case Dead:
		return "dead"
	}
	return "unknown"
}

// Kind tags what an actor is. Kind-specific logic is attached with
// SetBehavior through the hook interfaces below.
type Kind int

const (
	KindPlain Kind = iota
	KindPlayer
	KindBall
	KindPlane
	KindTarget
)

var kindNames = [...]string{"plain", "player", "ball", "plane", "target"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Kind-specific hooks. A behavior passed to SetBehavior implements any
// subset of these.
type (
	// ActorUpdater runs after the actor's components each update.
	ActorUpdater interface {
		UpdateActor(dt float32)
	}
	// ActorInputHandler runs after the actor's components each input pass.
	ActorInputHandler interface {
		ActorInput(in input.Snapshot)
	}
	// ActorDestroyer runs first when the actor is torn down.
	ActorDestroyer interface {
		OnDestroy()
	}
)

// Actor is the unit of simulation: a transform, a lifecycle state and an
// ordered set of components it exclusively owns. Accessed only from the
// game loop goroutine.
type Actor struct {
	id    handle.ID
	kind  Kind
	world *World
	state State

	position mgl32.Vec3
	rotation mgl32.Quat
	scale    float32

	worldTransform mgl32.Mat4
	recompute      bool

	components []Component

	updater   ActorUpdater
	inputter  ActorInputHandler
	destroyer ActorDestroyer
	destroyed bool
}

func newActor(w *World, id handle.ID, kind Kind) *Actor {
	return &Actor{
		id:             id,
		kind:           kind,
		world:          w,
		state:          Active,
		rotation:       mgl32.QuatIdent(),
		scale:          1,
		worldTransform: mgl32.Ident4(),
		recompute:      true,
	}
}

func (a *Actor) ID() handle.ID   { return a.id }
func (a *Actor) Kind() Kind      { return a.kind }
func (a *Actor) World() *World   { return a.world }
func (a *Actor) State() State    { return a.state }
func (a *Actor) Destroyed() bool { return a.destroyed }

func (a *Actor) SetState(s State) { a.state = s }

func (a *Actor) Position() mgl32.Vec3 { return a.position }
func (a *Actor) Rotation() mgl32.Quat { return a.rotation }
func (a *Actor) Scale() float32       { return a.scale }

func (a *Actor) SetPosition(p mgl32.Vec3) {
	a.position = p
	a.recompute = true
}

func (a *Actor) SetRotation(q mgl32.Quat) {
	a.rotation = q
	a.recompute = true
}

func (a *Actor) SetScale(s float32) {
	a.scale = s
	a.recompute = true
}

// WorldTransform returns the cached transform from the last
// ComputeWorldTransform.
func (a *Actor) WorldTransform() mgl32.Mat4 { return a.worldTransform }

// TransformDirty reports whether position, rotation or scale changed since
// the transform was last computed.
func (a *Actor) TransformDirty() bool { return a.recompute }

// Forward is the actor's +X axis in world space.
func (a *Actor) Forward() mgl32.Vec3 { return a.rotation.Rotate(geom.UnitX) }

// Right is the actor's +Y axis in world space.
func (a *Actor) Right() mgl32.Vec3 { return a.rotation.Rotate(geom.UnitY) }

// SetBehavior attaches kind-specific logic. b may implement ActorUpdater,
// ActorInputHandler and ActorDestroyer; hooks it lacks are skipped.
func (a *Actor) SetBehavior(b any) {
	a.updater, _ = b.(ActorUpdater)
	a.inputter, _ = b.(ActorInputHandler)
	a.destroyer, _ = b.(ActorDestroyer)
}

// Components returns the owned components in update order. The slice must
// not be modified.
func (a *Actor) Components() []Component { return a.components }

// Update advances the actor by dt seconds. Inactive actors are skipped.
func (a *Actor) Update(dt float32) {
	if a.state != Active {
		return
	}
	a.ComputeWorldTransform()

	for _, c := range a.components {
		if u, ok := c.(Updater); ok {
			u.Update(dt)
		}
	}
	if a.updater != nil {
		a.updater.UpdateActor(dt)
	}

	a.ComputeWorldTransform()
}

// ProcessInput hands the frame's input to components, then to the actor.
func (a *Actor) ProcessInput(in input.Snapshot) {
	if a.state != Active {
		return
	}
	for _, c := range a.components {
		if h, ok := c.(InputHandler); ok {
			h.ProcessInput(in)
		}
	}
	if a.inputter != nil {
		a.inputter.ActorInput(in)
	}
}

// ComputeWorldTransform rebuilds the world matrix (scale, then rotate, then
// translate) when the transform is dirty and notifies observers. It is a
// no-op otherwise.
func (a *Actor) ComputeWorldTransform() {
	if !a.recompute {
		return
	}
	a.recompute = false

	s := mgl32.Scale3D(a.scale, a.scale, a.scale)
	r := a.rotation.Mat4()
	t := mgl32.Translate3D(a.position[0], a.position[1], a.position[2])
	a.worldTransform = t.Mul4(r).Mul4(s)

	for _, c := range a.components {
		if o, ok := c.(TransformObserver); ok {
			o.OnUpdateWorldTransform()
		}
	}
}

// RotateToNewForward rotates the actor so that its +X axis points along
// forward, which must be unit length.
func (a *Actor) RotateToNewForward(forward mgl32.Vec3) {
	a.SetRotation(RotationToForward(forward))
}

// RotationToForward returns the rotation taking +X onto forward. Parallel
// and anti-parallel inputs are special-cased since their cross product
// with +X vanishes.
func RotationToForward(forward mgl32.Vec3) mgl32.Quat {
	dot := geom.UnitX.Dot(forward)
	switch {
	case dot > 0.9999:
		return mgl32.QuatIdent()
	case dot < -0.9999:
		return geom.AxisAngle(geom.UnitZ, geom.Pi)
	}
	axis := geom.SafeNormalize(geom.UnitX.Cross(forward))
	if axis == (mgl32.Vec3{}) {
		return mgl32.QuatIdent()
	}
	return geom.AxisAngle(axis, geom.Acos(dot))
}

// AddComponent inserts c before the first component with a strictly
// greater update order, so equal orders keep insertion order.
func (a *Actor) AddComponent(c Component) {
	order := c.UpdateOrder()
	i := 0
	for ; i < len(a.components); i++ {
		if order < a.components[i].UpdateOrder() {
			break
		}
	}
	a.components = slices.Insert(a.components, i, c)
}

// RemoveComponent drops c by identity. It does not run c's detach hook.
func (a *Actor) RemoveComponent(c Component) {
	if i := slices.Index(a.components, c); i >= 0 {
		a.components = slices.Delete(a.components, i, i+1)
	}
}

// DestroyComponent removes c and runs its detach hook.
func (a *Actor) DestroyComponent(c Component) {
	if i := slices.Index(a.components, c); i < 0 {
		return
	}
	a.RemoveComponent(c)
	if d, ok := c.(Detacher); ok {
		d.OnDetach()
	}
}

// Destroy tears the actor down: unregisters it from its world and destroys
// its components, last first. During an update pass the actor is only
// marked Dead and the world destroys it once the pass is over.
func (a *Actor) Destroy() {
	if a.destroyed {
		return
	}
	if a.world.updating {
		a.state = Dead
		return
	}
	a.destroy()
}

func (a *Actor) destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	a.state = Dead
	if a.destroyer != nil {
		a.destroyer.OnDestroy()
	}
	a.world.removeActor(a)
	for len(a.components) > 0 {
		a.DestroyComponent(a.components[len(a.components)-1])
	}
}
