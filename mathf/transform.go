package mathf

// Transform is the authoring-facing placement component: position, rotation
// and scale. Attach it to an entity alongside a Sprite to make it drawable.
type Transform struct {
	Position Vec3 `json:"position"`
	Rotation Quat `json:"rotation"`
	Scale    Vec3 `json:"scale"`
}

// NewTransform returns a transform at the origin with identity rotation and
// unit scale.
func NewTransform() Transform {
	return Transform{
		Rotation: QuatIdentity(),
		Scale:    Splat3(1),
	}
}

// TRS builds a transform from explicit position, rotation and scale.
func TRS(position Vec3, rotation Quat, scale Vec3) Transform {
	return Transform{Position: position, Rotation: rotation, Scale: scale}
}

// At returns a transform positioned at (x, y) with identity rotation and
// unit scale, the common case for 2D scenes.
func At(x, y float64) Transform {
	t := NewTransform()
	t.Position = V3(x, y, 0)
	return t
}

// XY returns the 2D position.
func (t Transform) XY() Vec2 {
	return t.Position.XY()
}

// SetXY overwrites the 2D position, preserving Z.
func (t *Transform) SetXY(p Vec2) {
	t.Position.X = p.X
	t.Position.Y = p.Y
}

// ZRotation returns the rotation around the Z axis in radians.
func (t Transform) ZRotation() float64 {
	return t.Rotation.ZAngle()
}

// Lerp interpolates position and scale linearly and keeps the rotation of
// the nearer endpoint. Used for render interpolation between physics ticks.
func (t Transform) Lerp(o Transform, alpha float64) Transform {
	out := t
	out.Position = t.Position.Lerp(o.Position, alpha)
	out.Scale = t.Scale.Lerp(o.Scale, alpha)
	if alpha >= 0.5 {
		out.Rotation = o.Rotation
	}
	return out
}
