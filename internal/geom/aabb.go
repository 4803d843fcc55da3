package geom

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned bounding box. It is a plain value; copy it freely.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func NewAABB(min, max mgl32.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// UpdateMinMax grows the box so that it includes point.
func (b *AABB) UpdateMinMax(point mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if point[i] < b.Min[i] {
			b.Min[i] = point[i]
		}
		if point[i] > b.Max[i] {
			b.Max[i] = point[i]
		}
	}
}

// Corners returns the 8 corners of the box, min first and max last.
func (b AABB) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		b.Min,
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		b.Max,
	}
}

// Rotate rotates every corner by q and re-bounds them. The result is a new
// axis-aligned bound, so repeated rotation only ever grows the box.
func (b *AABB) Rotate(q mgl32.Quat) {
	corners := b.Corners()
	p := q.Rotate(corners[0])
	b.Min = p
	b.Max = p
	for _, c := range corners[1:] {
		b.UpdateMinMax(q.Rotate(c))
	}
}

// Scale multiplies both corners by s. A negative s would swap min and max,
// so the corners are re-sorted afterwards.
func (b *AABB) Scale(s float32) {
	b.Min = b.Min.Mul(s)
	b.Max = b.Max.Mul(s)
	if s < 0 {
		b.Min, b.Max = b.Max, b.Min
	}
}

func (b *AABB) Translate(offset mgl32.Vec3) {
	b.Min = b.Min.Add(offset)
	b.Max = b.Max.Add(offset)
}

// Contains is inclusive on every face.
func (b AABB) Contains(point mgl32.Vec3) bool {
	outside := point[0] < b.Min[0] || point[1] < b.Min[1] || point[2] < b.Min[2] ||
		point[0] > b.Max[0] || point[1] > b.Max[1] || point[2] > b.Max[2]
	return !outside
}

// MinDistSq is the squared distance from point to the closest point of the box.
func (b AABB) MinDistSq(point mgl32.Vec3) float32 {
	var sum float32
	for i := 0; i < 3; i++ {
		d := max(b.Min[i]-point[i], 0)
		d = max(d, point[i]-b.Max[i])
		sum += d * d
	}
	return sum
}

// Intersect reports whether a and b overlap on all three principal axes.
// Touching faces count as overlapping.
func Intersect(a, b AABB) bool {
	separated := a.Max[0] < b.Min[0] || a.Max[1] < b.Min[1] || a.Max[2] < b.Min[2] ||
		b.Max[0] < a.Min[0] || b.Max[1] < a.Min[1] || b.Max[2] < a.Min[2]
	return !separated
}
