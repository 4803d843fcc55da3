package geom

import "github.com/go-gl/mathgl/mgl32"

// ResolveOverlap returns the translation that pushes mover out of obstacle
// along a single axis. For each axis the smaller of the "push positive" and
// "push negative" corrections is taken; only the axis with the smallest
// magnitude is kept (x wins ties, then y). This is not a full minimum
// translation vector and may take several frames to settle on corners.
//
// ok is false and the correction is zero when the boxes do not overlap.
func ResolveOverlap(mover, obstacle AABB) (mgl32.Vec3, bool) {
	if !Intersect(mover, obstacle) {
		return mgl32.Vec3{}, false
	}

	dx := smallerMagnitude(obstacle.Max[0]-mover.Min[0], obstacle.Min[0]-mover.Max[0])
	dy := smallerMagnitude(obstacle.Max[1]-mover.Min[1], obstacle.Min[1]-mover.Max[1])
	dz := smallerMagnitude(obstacle.Max[2]-mover.Min[2], obstacle.Min[2]-mover.Max[2])

	ax, ay, az := mgl32.Abs(dx), mgl32.Abs(dy), mgl32.Abs(dz)
	switch {
	case ax <= ay && ax <= az:
		return mgl32.Vec3{dx, 0, 0}, true
	case ay <= ax && ay <= az:
		return mgl32.Vec3{0, dy, 0}, true
	default:
		return mgl32.Vec3{0, 0, dz}, true
	}
}

func smallerMagnitude(a, b float32) float32 {
	if mgl32.Abs(a) < mgl32.Abs(b) {
		return a
	}
	return b
}
