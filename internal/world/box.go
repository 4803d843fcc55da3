package world

import "github.com/dobrilasunde/Shooting-Gallery/internal/geom"

// BoxComponent gives its owner a collision box in the physics world. The
// object box is fixed by the owner; the world box follows the owner's
// transform.
type BoxComponent struct {
	Base
	objectBox    geom.AABB
	worldBox     geom.AABB
	shouldRotate bool
	phys         *PhysWorld
}

// NewBoxComponent attaches a box to owner and registers it with the
// owner's physics world.
func NewBoxComponent(owner *Actor) *BoxComponent {
	b := &BoxComponent{
		Base:         NewBase(owner, DefaultUpdateOrder),
		shouldRotate: true,
		phys:         owner.World().Phys(),
	}
	owner.AddComponent(b)
	b.phys.AddBox(b)
	return b
}

func (b *BoxComponent) ObjectBox() geom.AABB { return b.objectBox }
func (b *BoxComponent) WorldBox() geom.AABB  { return b.worldBox }
func (b *BoxComponent) ShouldRotate() bool   { return b.shouldRotate }

// SetObjectBox replaces the object-space box. The world box catches up on
// the owner's next transform rebuild, or call OnUpdateWorldTransform.
func (b *BoxComponent) SetObjectBox(box geom.AABB) { b.objectBox = box }

// SetShouldRotate controls whether the owner's rotation is applied. Boxes
// that must stay upright regardless of orientation turn it off.
func (b *BoxComponent) SetShouldRotate(rotate bool) { b.shouldRotate = rotate }

// OnUpdateWorldTransform rebuilds the world box from the object box in the
// same order the owner's matrix is built: scale, rotate, translate.
func (b *BoxComponent) OnUpdateWorldTransform() {
	owner := b.Owner()
	wb := b.objectBox
	wb.Scale(owner.Scale())
	if b.shouldRotate {
		wb.Rotate(owner.Rotation())
	}
	wb.Translate(owner.Position())
	b.worldBox = wb
}

func (b *BoxComponent) OnDetach() {
	b.phys.RemoveBox(b)
}
