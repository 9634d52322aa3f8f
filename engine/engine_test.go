package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/engine"
	"github.com/plus3/lumen/mathf"
	"github.com/plus3/lumen/physics"
)

func TestEngineFixedUpdateInterleaving(t *testing.T) {
	eng := engine.New(engine.DefaultConfig(), &engine.NullRenderer{})

	ticks := 0
	eng.AddSystem(engine.SystemFunc(func(_ *ecs.World, _ *physics.World, dt float64) {
		ticks++
		assert.Equal(t, eng.Config().FixedTimestep, dt, "systems always see the fixed dt")
	}))

	h := eng.Config().FixedTimestep

	// 2.5 ticks of wall time: two fixed updates, half a tick left over.
	eng.StepOnly(2.5 * h)
	assert.Equal(t, 2, ticks)
	assert.InDelta(t, 0.5, eng.Alpha(), 1e-9)

	// The remainder carries into the next frame.
	eng.StepOnly(h)
	assert.Equal(t, 3, ticks)
	assert.InDelta(t, 0.5, eng.Alpha(), 1e-9)
}

func TestEngineSystemsSeePhysicsResults(t *testing.T) {
	eng := engine.New(engine.DefaultConfig(), &engine.NullRenderer{})
	eng.Physics().SetGravity(mathf.Vec2{})

	id := eng.World().CreateEntity()
	body := physics.NewBody(mathf.V2(0, 0), physics.Dynamic).
		WithVelocity(mathf.V2(1, 0)).
		WithDamping(0, 0)
	eng.Physics().AddBody(id, body)

	var seenX []float64
	eng.AddSystem(engine.SystemFunc(func(_ *ecs.World, phys *physics.World, _ float64) {
		b, _ := phys.Body(id)
		seenX = append(seenX, b.Position.X)
	}))

	h := eng.Config().FixedTimestep
	eng.StepOnly(2 * h)

	// The physics tick runs before the schedule, so each system invocation
	// observes the freshly integrated position.
	require.Len(t, seenX, 2)
	assert.InDelta(t, h, seenX[0], 1e-12)
	assert.InDelta(t, 2*h, seenX[1], 1e-12)
}

func TestEngineRenderQueriesTransformAndSprite(t *testing.T) {
	renderer := &engine.NullRenderer{}
	eng := engine.New(engine.DefaultConfig(), renderer)

	drawable := eng.World().CreateEntity()
	ecs.Add(eng.World(), drawable, mathf.At(0, 0))
	ecs.Add(eng.World(), drawable, engine.NewSprite("hero.png", mathf.Splat2(1)))

	// Transform without sprite: not drawn.
	bare := eng.World().CreateEntity()
	ecs.Add(eng.World(), bare, mathf.At(5, 5))

	eng.Render(0)
	assert.Equal(t, 1, renderer.Frames)
	assert.Equal(t, 1, renderer.Sprites)
}

func TestEngineUpdateRendersEveryFrame(t *testing.T) {
	renderer := &engine.NullRenderer{}
	eng := engine.New(engine.DefaultConfig(), renderer)

	// Even a frame too short to contain a physics tick renders once.
	eng.Update(eng.Config().FixedTimestep * 0.25)
	assert.Equal(t, 1, renderer.Frames)
}

func TestEngineDestroyEntityRemovesPhysicsState(t *testing.T) {
	eng := engine.New(engine.DefaultConfig(), &engine.NullRenderer{})

	id := eng.World().CreateEntity()
	ecs.Add(eng.World(), id, mathf.At(0, 0))
	eng.Physics().AddBody(id, physics.NewBody(mathf.V2(0, 0), physics.Dynamic))
	eng.Physics().AddCollider(id, physics.Circle{Radius: 1})

	require.True(t, eng.DestroyEntity(id))

	_, ok := eng.Physics().Body(id)
	assert.False(t, ok, "destroying the entity must drop its body")
	_, ok = eng.Physics().ColliderOf(id)
	assert.False(t, ok, "destroying the entity must drop its collider")
}

func TestSyncTransforms(t *testing.T) {
	eng := engine.New(engine.DefaultConfig(), &engine.NullRenderer{})
	eng.Physics().SetGravity(mathf.Vec2{})
	eng.AddSystem(engine.SyncTransforms{})

	id := eng.World().CreateEntity()
	ecs.Add(eng.World(), id, mathf.At(0, 0))
	body := physics.NewBody(mathf.V2(0, 0), physics.Dynamic).
		WithVelocity(mathf.V2(6, 0)).
		WithDamping(0, 0)
	eng.Physics().AddBody(id, body)

	h := eng.Config().FixedTimestep
	eng.StepOnly(h)

	transform, ok := ecs.Get[mathf.Transform](eng.World(), id)
	require.True(t, ok)
	assert.InDelta(t, 6*h, transform.Position.X, 1e-12)
}

func TestEngineClear(t *testing.T) {
	eng := engine.New(engine.DefaultConfig(), &engine.NullRenderer{})

	id := eng.World().CreateEntity()
	eng.Physics().AddBody(id, physics.NewBody(mathf.V2(0, 0), physics.Dynamic))
	eng.AddSystem(engine.SystemFunc(func(*ecs.World, *physics.World, float64) {}))

	eng.Clear()
	assert.Equal(t, 0, eng.World().EntityCount())
	assert.Equal(t, 0, eng.Physics().BodyCount())
	assert.Equal(t, 0, eng.Schedule().Len())
}
