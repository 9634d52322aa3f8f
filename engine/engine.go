package engine

import (
	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/mathf"
	"github.com/plus3/lumen/physics"
)

// Engine owns the world, the physics simulation, the system schedule and
// the renderer, and drives them with a fixed-timestep accumulator: each
// Update drains whole physics ticks (physics tick, then system schedule),
// carries the remainder, and renders with the leftover fraction as the
// interpolation alpha.
//
// The engine, its world and its physics state are exclusively owned by one
// goroutine. Editor-style deployments that poke an engine from a second
// goroutine must serialize through a Session.
type Engine struct {
	world    *ecs.World
	phys     *physics.World
	schedule *Schedule
	renderer Renderer
	config   Config

	accumulator float64
}

// New creates an engine with the given configuration and renderer. A nil
// renderer runs headless.
func New(config Config, renderer Renderer) *Engine {
	if config.FixedTimestep <= 0 {
		config.FixedTimestep = DefaultConfig().FixedTimestep
	}
	if renderer == nil {
		renderer = &NullRenderer{}
	}

	world := ecs.NewWorldWithCapacity(config.MaxEntities)
	phys := physics.NewWorld()
	phys.SetFixedTimestep(config.FixedTimestep)

	e := &Engine{
		world:    world,
		phys:     phys,
		schedule: NewSchedule(world),
		renderer: renderer,
		config:   config,
	}

	// Destroying an entity through the world also drops its simulation
	// state, so the two stores cannot drift apart.
	world.OnDestroy(phys.RemoveBody)

	return e
}

// World returns the entity/component store.
func (e *Engine) World() *ecs.World {
	return e.world
}

// Physics returns the physics simulation.
func (e *Engine) Physics() *physics.World {
	return e.phys
}

// Schedule returns the system schedule.
func (e *Engine) Schedule() *Schedule {
	return e.schedule
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// AddSystem registers a system at the end of the schedule.
func (e *Engine) AddSystem(system System) {
	e.schedule.Add(system)
}

// Update advances the simulation by dt of wall-clock time and renders one
// frame. Physics and systems run once per whole fixed timestep contained in
// the accumulated time; the remainder becomes the render interpolation
// alpha.
func (e *Engine) Update(dt float64) {
	e.accumulator += dt
	for e.accumulator >= e.config.FixedTimestep {
		e.fixedUpdate(e.config.FixedTimestep)
		e.accumulator -= e.config.FixedTimestep
	}
	e.Render(e.accumulator / e.config.FixedTimestep)
}

// StepOnly advances fixed ticks without rendering. Headless tools use this.
func (e *Engine) StepOnly(dt float64) int {
	ticks := 0
	e.accumulator += dt
	for e.accumulator >= e.config.FixedTimestep {
		e.fixedUpdate(e.config.FixedTimestep)
		e.accumulator -= e.config.FixedTimestep
		ticks++
	}
	return ticks
}

// Within one tick: integration precedes collision detection precedes
// resolution precedes position integration (inside Tick), and the whole
// physics tick precedes the system schedule. That ordering is load-bearing.
func (e *Engine) fixedUpdate(dt float64) {
	e.phys.Tick(dt)
	e.schedule.Execute(e.world, e.phys, dt)
}

// Alpha is the current interpolation fraction in [0, 1).
func (e *Engine) Alpha() float64 {
	return e.accumulator / e.config.FixedTimestep
}

// Render draws every entity carrying both a Transform and a Sprite.
func (e *Engine) Render(alpha float64) {
	e.renderer.BeginFrame(e.config.ClearColor)
	ecs.Each2(e.world, func(_ ecs.EntityId, transform *mathf.Transform, sprite *Sprite) {
		e.renderer.DrawSprite(sprite, transform, alpha)
	})
	e.renderer.EndFrame()
}

// SyncTransforms copies each simulated body's position and rotation into
// the entity's authoring Transform so rendering tracks the simulation.
// Typically registered as the last system in the schedule.
type SyncTransforms struct{}

func (SyncTransforms) Execute(world *ecs.World, phys *physics.World, _ float64) {
	ecs.Each(world, func(id ecs.EntityId, transform *mathf.Transform) {
		body, ok := phys.Body(id)
		if !ok {
			return
		}
		transform.SetXY(body.Position)
		transform.Rotation = mathf.QuatFromZRotation(body.Rotation)
	})
}

// DestroyEntity destroys the entity and, through the world's destroy hook,
// its physics state.
func (e *Engine) DestroyEntity(id ecs.EntityId) bool {
	return e.world.DestroyEntity(id)
}

// Clear removes all entities, physics state and registered systems.
func (e *Engine) Clear() {
	e.schedule.Clear()
	e.world.Clear()
	e.phys.Clear()
	e.schedule = NewSchedule(e.world)
	e.accumulator = 0
}
