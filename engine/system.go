package engine

import (
	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/physics"
)

// System is a unit of game behavior invoked once per fixed physics tick
// with mutable access to the world and the physics state. Systems are
// registered into a Schedule and executed strictly in registration order;
// a system must not assume anything about which systems run after it, but
// may rely on everything registered before it having already run this tick.
type System interface {
	Execute(world *ecs.World, phys *physics.World, dt float64)
}

// Initializer is an optional lifecycle hook run once when the system is
// added to a schedule.
type Initializer interface {
	Initialize(world *ecs.World)
}

// Finalizer is an optional lifecycle hook run once when the schedule is
// cleared or torn down.
type Finalizer interface {
	Cleanup(world *ecs.World)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(world *ecs.World, phys *physics.World, dt float64)

func (f SystemFunc) Execute(world *ecs.World, phys *physics.World, dt float64) {
	f(world, phys, dt)
}
