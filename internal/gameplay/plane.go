package gameplay

import "github.com/dobrilasunde/Shooting-Gallery/internal/world"

// PlaneScale is the default scale of a wall or floor tile.
const PlaneScale = 10

// Plane is a static wall, floor or obstacle tile the player collides with.
type Plane struct {
	actor *world.Actor
	box   *world.BoxComponent
}

// NewPlane spawns a plane using meshName for its look and bounds, and
// registers its box with the world's plane list.
func NewPlane(w *world.World, cat Catalog, meshName string) *Plane {
	a := w.NewActor(world.KindPlane)
	a.SetScale(PlaneScale)
	mc := attachMesh(a, cat, meshName)

	p := &Plane{actor: a, box: world.NewBoxComponent(a)}
	if m := mc.Mesh(); m != nil {
		p.box.SetObjectBox(m.Box())
	}
	a.SetBehavior(p)
	w.AddPlane(p.box)
	return p
}

func (p *Plane) Actor() *world.Actor      { return p.actor }
func (p *Plane) Box() *world.BoxComponent { return p.box }

func (p *Plane) OnDestroy() {
	p.actor.World().RemovePlane(p.box)
}
