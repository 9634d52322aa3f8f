package physics

import "github.com/plus3/lumen/mathf"

// Collider is a collision shape attached to an entity. Shapes only need to
// report an axis-aligned bounding box for the broad phase; exact tests in
// the narrow phase are per shape pair.
type Collider interface {
	// AABB returns the world-space bounding box of the shape placed at the
	// given position.
	AABB(position mathf.Vec2) (min, max mathf.Vec2)
}

// Circle is a circle collider centered on the body position.
type Circle struct {
	Radius float64 `json:"radius"`
}

func (c Circle) AABB(position mathf.Vec2) (mathf.Vec2, mathf.Vec2) {
	r := mathf.Splat2(c.Radius)
	return position.Sub(r), position.Add(r)
}

// Box is an axis-aligned box collider described by half extents.
type Box struct {
	HalfExtents mathf.Vec2 `json:"halfExtents"`
}

// NewBox builds a box collider from full width and height.
func NewBox(width, height float64) Box {
	return Box{HalfExtents: mathf.V2(width*0.5, height*0.5)}
}

func (b Box) AABB(position mathf.Vec2) (mathf.Vec2, mathf.Vec2) {
	return position.Sub(b.HalfExtents), position.Add(b.HalfExtents)
}

// Polygon is a convex polygon collider with vertices relative to the body
// position.
type Polygon struct {
	Vertices []mathf.Vec2 `json:"vertices"`
}

func (p Polygon) AABB(position mathf.Vec2) (mathf.Vec2, mathf.Vec2) {
	if len(p.Vertices) == 0 {
		return position, position
	}
	min := position.Add(p.Vertices[0])
	max := min
	for _, v := range p.Vertices[1:] {
		world := position.Add(v)
		if world.X < min.X {
			min.X = world.X
		}
		if world.Y < min.Y {
			min.Y = world.Y
		}
		if world.X > max.X {
			max.X = world.X
		}
		if world.Y > max.Y {
			max.Y = world.Y
		}
	}
	return min, max
}
