package geom

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// LineSegment runs from Start (t=0) to End (t=1).
type LineSegment struct {
	Start mgl32.Vec3
	End   mgl32.Vec3
}

func NewLineSegment(start, end mgl32.Vec3) LineSegment {
	return LineSegment{Start: start, End: end}
}

func (l LineSegment) PointOnSegment(t float32) mgl32.Vec3 {
	return l.Start.Add(l.End.Sub(l.Start).Mul(t))
}

// MinDistSq is the squared distance from point to the closest point on l.
func (l LineSegment) MinDistSq(point mgl32.Vec3) float32 {
	ab := l.End.Sub(l.Start)
	ac := point.Sub(l.Start)
	if ac.Dot(ab) < 0 {
		return ac.Dot(ac)
	}
	bc := point.Sub(l.End)
	if bc.Dot(ab.Mul(-1)) < 0 {
		return bc.Dot(bc)
	}
	// Project onto the segment's line.
	abLenSq := ab.Dot(ab)
	if NearZero(abLenSq) {
		return ac.Dot(ac)
	}
	p := ab.Mul(ac.Dot(ab) / abLenSq)
	d := ac.Sub(p)
	return d.Dot(d)
}

type faceHit struct {
	t      float32
	axis   int
	plane  float32
	normal mgl32.Vec3
}

// testSidePlane appends the crossing of the plane l[axis]=plane if it
// happens within the segment. Near-parallel segments never cross.
func testSidePlane(l LineSegment, axis int, plane float32, normal mgl32.Vec3, out []faceHit) []faceHit {
	denom := l.End[axis] - l.Start[axis]
	if NearZero(denom) {
		return out
	}
	t := (plane - l.Start[axis]) / denom
	if t >= 0 && t <= 1 {
		out = append(out, faceHit{t: t, axis: axis, plane: plane, normal: normal})
	}
	return out
}

// IntersectSegment tests l against b and returns the entry parameter t and
// the face normal of the crossing closest to l.Start.
func IntersectSegment(l LineSegment, b AABB) (float32, mgl32.Vec3, bool) {
	hits := make([]faceHit, 0, 6)
	hits = testSidePlane(l, 0, b.Min[0], NegUnitX, hits)
	hits = testSidePlane(l, 0, b.Max[0], UnitX, hits)
	hits = testSidePlane(l, 1, b.Min[1], NegUnitY, hits)
	hits = testSidePlane(l, 1, b.Max[1], UnitY, hits)
	hits = testSidePlane(l, 2, b.Min[2], NegUnitZ, hits)
	hits = testSidePlane(l, 2, b.Max[2], UnitZ, hits)

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].t < hits[j].t })

	for _, h := range hits {
		// The solved point can land an ulp off its own face; pin that axis
		// so only the other two decide containment.
		p := l.PointOnSegment(h.t)
		p[h.axis] = h.plane
		if b.Contains(p) {
			return h.t, h.normal, true
		}
	}
	return 0, mgl32.Vec3{}, false
}
