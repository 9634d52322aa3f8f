package physics

import (
	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/mathf"
)

// Contact quantifies a single collision. The normal is a unit vector
// pointing from body A toward body B; penetration is the non-negative
// overlap depth along the normal.
type Contact struct {
	Point       mathf.Vec2
	Normal      mathf.Vec2
	Penetration float64
}

// CollisionEvent reports one confirmed collision for the current tick.
// Events are produced and fully consumed within a single tick and are
// discarded when the next tick begins.
type CollisionEvent struct {
	A       ecs.EntityId
	B       ecs.EntityId
	Contact Contact
}
