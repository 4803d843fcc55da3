package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Arena conventions: +X forward, +Y right, +Z up.
var (
	UnitX    = mgl32.Vec3{1, 0, 0}
	UnitY    = mgl32.Vec3{0, 1, 0}
	UnitZ    = mgl32.Vec3{0, 0, 1}
	NegUnitX = mgl32.Vec3{-1, 0, 0}
	NegUnitY = mgl32.Vec3{0, -1, 0}
	NegUnitZ = mgl32.Vec3{0, 0, -1}
)

const (
	Pi      = float32(math.Pi)
	TwoPi   = 2 * Pi
	PiOver2 = Pi / 2

	// NearZeroEpsilon is the tolerance used by NearZero.
	NearZeroEpsilon float32 = 0.001
)

// NearZero reports whether |v| <= NearZeroEpsilon.
func NearZero(v float32) bool {
	return mgl32.Abs(v) <= NearZeroEpsilon
}

// Acos clamps to [-1, 1] first so rounding noise never yields NaN.
func Acos(v float32) float32 {
	return float32(math.Acos(float64(mgl32.Clamp(v, -1, 1))))
}

func Cos(v float32) float32 {
	return float32(math.Cos(float64(v)))
}

// AxisAngle builds the quaternion rotating angle radians about axis.
func AxisAngle(axis mgl32.Vec3, angle float32) mgl32.Quat {
	return mgl32.QuatRotate(angle, axis)
}

// Concatenate returns the rotation q followed by p.
func Concatenate(q, p mgl32.Quat) mgl32.Quat {
	return p.Mul(q)
}

// Reflect mirrors v about the plane with normal n (n must be unit length).
func Reflect(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// SafeNormalize returns v normalized, or the zero vector when v has no length.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if NearZero(v.Len()) {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}
