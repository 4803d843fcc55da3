package world

import (
	"math"
	"slices"

	"github.com/dobrilasunde/Shooting-Gallery/internal/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// CollisionInfo describes the closest box a segment cast struck.
type CollisionInfo struct {
	Point  mgl32.Vec3 // world-space entry point
	Normal mgl32.Vec3 // face normal at the entry point
	T      float32    // segment parameter of Point
	Box    *BoxComponent
	Actor  *Actor
}

// PhysWorld is the registry of live collision boxes. It never owns them;
// boxes add and remove themselves. Queries scan every box.
type PhysWorld struct {
	boxes []*BoxComponent
}

func NewPhysWorld() *PhysWorld {
	return &PhysWorld{boxes: make([]*BoxComponent, 0, 256)}
}

// SegmentCast returns the box whose entry point is nearest l.Start.
func (p *PhysWorld) SegmentCast(l geom.LineSegment) (CollisionInfo, bool) {
	return p.SegmentCastExcept(l, nil)
}

// SegmentCastExcept is SegmentCast with skip's boxes left out.
func (p *PhysWorld) SegmentCastExcept(l geom.LineSegment, skip *Actor) (CollisionInfo, bool) {
	var info CollisionInfo
	closest := float32(math.MaxFloat32)
	found := false
	for _, box := range p.boxes {
		if skip != nil && box.Owner() == skip {
			continue
		}
		t, normal, ok := geom.IntersectSegment(l, box.WorldBox())
		if !ok || t >= closest {
			continue
		}
		closest = t
		found = true
		info = CollisionInfo{
			Point:  l.PointOnSegment(t),
			Normal: normal,
			T:      t,
			Box:    box,
			Actor:  box.Owner(),
		}
	}
	return info, found
}

// AddBox registers box. Adding a box twice is a no-op.
func (p *PhysWorld) AddBox(box *BoxComponent) {
	if slices.Contains(p.boxes, box) {
		return
	}
	p.boxes = append(p.boxes, box)
}

// RemoveBox unregisters box; unknown boxes are ignored.
func (p *PhysWorld) RemoveBox(box *BoxComponent) {
	if i := slices.Index(p.boxes, box); i >= 0 {
		p.boxes = slices.Delete(p.boxes, i, i+1)
	}
}

func (p *PhysWorld) Len() int { return len(p.boxes) }
