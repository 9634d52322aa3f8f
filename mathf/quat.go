package mathf

import "math"

// Quat is a rotation quaternion. The zero value is not a valid rotation;
// use QuatIdentity for "no rotation".
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle builds a quaternion rotating angle radians around axis.
// The axis is normalized internally.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	a := axis.Normalize()
	sin, cos := math.Sincos(angle * 0.5)
	return Quat{
		X: a.X * sin,
		Y: a.Y * sin,
		Z: a.Z * sin,
		W: cos,
	}
}

// QuatFromZRotation builds a quaternion rotating angle radians around the Z
// axis, the only rotation a 2D sprite uses.
func QuatFromZRotation(angle float64) Quat {
	sin, cos := math.Sincos(angle * 0.5)
	return Quat{Z: sin, W: cos}
}

// Mul composes two rotations: q then o.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

func (q Quat) LengthSquared() float64 {
	return q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
}

func (q Quat) Length() float64 {
	return math.Sqrt(q.LengthSquared())
}

// Normalize returns a unit quaternion, or identity if q has zero length.
func (q Quat) Normalize() Quat {
	l := q.Length()
	if l == 0 {
		return QuatIdentity()
	}
	return Quat{X: q.X / l, Y: q.Y / l, Z: q.Z / l, W: q.W / l}
}

// Conjugate returns the inverse rotation for unit quaternions.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// RotateVec3 applies the rotation to v.
func (q Quat) RotateVec3(v Vec3) Vec3 {
	qv := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	uv := qv.Cross(v)
	uuv := qv.Cross(uv)
	return v.Add(uv.Scale(2 * q.W)).Add(uuv.Scale(2))
}

// ZAngle extracts the rotation around the Z axis in radians.
func (q Quat) ZAngle() float64 {
	return math.Atan2(2*(q.W*q.Z+q.X*q.Y), 1-2*(q.Y*q.Y+q.Z*q.Z))
}
