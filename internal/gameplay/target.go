package gameplay

import (
	"github.com/dobrilasunde/Shooting-Gallery/internal/geom"
	"github.com/dobrilasunde/Shooting-Gallery/internal/world"
)

// TargetRotation faces a fresh target back toward the arena center.
var TargetRotation = geom.AxisAngle(geom.UnitZ, geom.Pi)

// Target is something to shoot at. It only carries a mesh and a box; hits
// are reported by the ball that struck it.
type Target struct {
	actor *world.Actor
	box   *world.BoxComponent
}

func NewTarget(w *world.World, cat Catalog, meshName string) *Target {
	a := w.NewActor(world.KindTarget)
	a.SetRotation(TargetRotation)
	mc := attachMesh(a, cat, meshName)

	t := &Target{actor: a, box: world.NewBoxComponent(a)}
	if m := mc.Mesh(); m != nil {
		t.box.SetObjectBox(m.Box())
	}
	return t
}

func (t *Target) Actor() *world.Actor      { return t.actor }
func (t *Target) Box() *world.BoxComponent { return t.box }
